package upload

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/quireapp/quire/internal/shared"
	tu "github.com/quireapp/quire/internal/testing"
)

func TestValidate(t *testing.T) {
	tc := []struct {
		name     string
		mimeType string
		size     int64
		wantErr  error
	}{
		{"PDFAccepted", "application/pdf", 1024, nil},
		{"PNGAccepted", "image/png", 1024, nil},
		{"JPEGAccepted", "image/jpeg", 1024, nil},
		{"JPGAliasAccepted", "image/jpg", 1024, nil},
		{"GIFRejected", "image/gif", 1024, shared.ErrInvalidFileType},
		{"HTMLRejected", "text/html", 1024, shared.ErrInvalidFileType},
		{"ZeroByteAccepted", "application/pdf", 0, nil},
		{"ExactLimitAccepted", "application/pdf", MaxFileSize, nil},
		{"OneOverLimitRejected", "application/pdf", MaxFileSize + 1, shared.ErrFileTooLarge},
		{"TwelveMiBRejected", "application/pdf", 12 * 1024 * 1024, shared.ErrFileTooLarge},
	}
	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			err := Validate("score.pdf", c.mimeType, c.size, MaxFileSize)
			if !errors.Is(err, c.wantErr) {
				t.Errorf("Validate() = %v, expected %v", err, c.wantErr)
			}
		})
	}

	t.Run("ErrorNamesFile", func(t *testing.T) {
		err := Validate("huge-score.pdf", "application/pdf", MaxFileSize+1, MaxFileSize)
		if err == nil || !strings.Contains(err.Error(), "huge-score.pdf") {
			t.Errorf("Expected error to name the file, got %v", err)
		}
		if !strings.Contains(err.Error(), "10.0 MiB") {
			t.Errorf("Expected error to report the limit, got %v", err)
		}
	})
}

func TestDetectFileType(t *testing.T) {
	tc := []struct {
		name     string
		filename string
		data     []byte
		want     string
	}{
		{"PDFExtension", "score.pdf", nil, "application/pdf"},
		{"UppercaseExtension", "SCORE.PDF", nil, "application/pdf"},
		{"PNGExtension", "score.png", nil, "image/png"},
		{"JPGExtension", "score.jpg", nil, "image/jpeg"},
		{"JPEGExtension", "score.jpeg", nil, "image/jpeg"},
		{"SniffedPNG", "mystery", tu.PNGData(), "image/png"},
	}
	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			if got := DetectFileType(c.filename, c.data); got != c.want {
				t.Errorf("DetectFileType(%q) = %q, expected %q", c.filename, got, c.want)
			}
		})
	}
}

func TestSheetName(t *testing.T) {
	tc := []struct {
		path string
		want string
	}{
		{"moonlight-sonata.pdf", "moonlight-sonata"},
		{"/library/scores/etude.png", "etude"},
		{"no-extension", "no-extension"},
		{"dotted.name.pdf", "dotted.name"},
	}
	for _, c := range tc {
		t.Run(c.path, func(t *testing.T) {
			if got := SheetName(c.path); got != c.want {
				t.Errorf("SheetName(%q) = %q, expected %q", c.path, got, c.want)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		original := tu.PDFData(2048)

		encoded := Encode("application/pdf", original)
		if !strings.HasPrefix(encoded, "data:application/pdf;base64,") {
			t.Errorf("Unexpected encoding prefix: %s", encoded[:40])
		}

		mimeType, decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Failed to decode: %v", err)
		}
		if mimeType != "application/pdf" {
			t.Errorf("Got MIME type %q, expected application/pdf", mimeType)
		}
		if !bytes.Equal(decoded, original) {
			t.Error("Decoded bytes differ from original")
		}
	})

	t.Run("EmptyPayload", func(t *testing.T) {
		mimeType, decoded, err := Decode(Encode("image/png", nil))
		if err != nil {
			t.Fatalf("Failed to decode empty payload: %v", err)
		}
		if mimeType != "image/png" || len(decoded) != 0 {
			t.Errorf("Got (%q, %d bytes), expected empty PNG payload", mimeType, len(decoded))
		}
	})

	t.Run("InvalidInputs", func(t *testing.T) {
		tc := []struct {
			name  string
			input string
		}{
			{"MissingPrefix", "application/pdf;base64,AAAA"},
			{"MissingMarker", "data:application/pdf:AAAA"},
			{"BadBase64", "data:application/pdf;base64,!!not-base64!!"},
		}
		for _, c := range tc {
			t.Run(c.name, func(t *testing.T) {
				_, _, err := Decode(c.input)
				if !errors.Is(err, shared.ErrInvalidEncoding) {
					t.Errorf("Expected ErrInvalidEncoding, got %v", err)
				}
			})
		}
	})
}

func TestReadFile(t *testing.T) {
	t.Run("ValidPDF", func(t *testing.T) {
		dir := t.TempDir()
		content := tu.PDFData(512)
		path := tu.WriteTempFile(t, dir, "prelude.pdf", content)

		name, mimeType, fileData, err := ReadFile(path, MaxFileSize)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if name != "prelude" {
			t.Errorf("Got name %q, expected prelude", name)
		}
		if mimeType != "application/pdf" {
			t.Errorf("Got MIME type %q, expected application/pdf", mimeType)
		}

		_, decoded, err := Decode(fileData)
		if err != nil {
			t.Fatalf("Failed to decode payload: %v", err)
		}
		if !bytes.Equal(decoded, content) {
			t.Error("Payload differs from file content")
		}
	})

	t.Run("OversizedFile", func(t *testing.T) {
		dir := t.TempDir()
		path := tu.WriteTempFile(t, dir, "big.pdf", tu.PDFData(128))

		_, _, _, err := ReadFile(path, 64)
		if !errors.Is(err, shared.ErrFileTooLarge) {
			t.Errorf("Expected ErrFileTooLarge, got %v", err)
		}
	})

	t.Run("DisallowedType", func(t *testing.T) {
		dir := t.TempDir()
		path := tu.WriteTempFile(t, dir, "notes.txt", []byte("plain text"))

		_, _, _, err := ReadFile(path, MaxFileSize)
		if !errors.Is(err, shared.ErrInvalidFileType) {
			t.Errorf("Expected ErrInvalidFileType, got %v", err)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, _, _, err := ReadFile("/nonexistent/score.pdf", MaxFileSize)
		if err == nil {
			t.Error("Expected error for missing file")
		}
	})
}
