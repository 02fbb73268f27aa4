package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAllowedFileType(t *testing.T) {
	tc := []struct {
		mimeType string
		want     bool
	}{
		{"application/pdf", true},
		{"image/png", true},
		{"image/jpeg", true},
		{"image/jpg", true},
		{"image/gif", false},
		{"text/html", false},
		{"", false},
		{"application/PDF", false},
	}
	for _, c := range tc {
		t.Run(c.mimeType, func(t *testing.T) {
			if got := AllowedFileType(c.mimeType); got != c.want {
				t.Errorf("AllowedFileType(%q) = %v, expected %v", c.mimeType, got, c.want)
			}
		})
	}
}

func TestSheetValidate(t *testing.T) {
	tc := []struct {
		name    string
		sheet   Sheet
		wantErr bool
	}{
		{"Valid", Sheet{Name: "Etude", FileType: "application/pdf"}, false},
		{"MissingName", Sheet{FileType: "application/pdf"}, true},
		{"DisallowedType", Sheet{Name: "Etude", FileType: "text/plain"}, true},
	}
	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			err := c.sheet.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestSheetClone(t *testing.T) {
	original := Sheet{
		ID:          "s1",
		Name:        "Original",
		FileType:    "application/pdf",
		Annotations: []json.RawMessage{json.RawMessage(`{"page":1}`)},
	}

	clone := original.Clone()
	clone.Name = "Changed"
	clone.Annotations[0] = json.RawMessage(`{"page":2}`)
	clone.Annotations = append(clone.Annotations, json.RawMessage(`{}`))

	if original.Name != "Original" {
		t.Errorf("Clone shares the name field: %q", original.Name)
	}
	if string(original.Annotations[0]) != `{"page":1}` {
		t.Errorf("Clone shares annotation storage: %s", original.Annotations[0])
	}
	if len(original.Annotations) != 1 {
		t.Errorf("Clone append grew the original: %d", len(original.Annotations))
	}
}

func TestPlaylistClone(t *testing.T) {
	original := Playlist{ID: "p1", Name: "Set", SheetIDs: []string{"a", "b"}}

	clone := original.Clone()
	clone.SheetIDs[0] = "z"

	if original.SheetIDs[0] != "a" {
		t.Errorf("Clone shares sheet id storage: %v", original.SheetIDs)
	}
}

func TestSheetPatchApply(t *testing.T) {
	base := func() Sheet {
		return Sheet{
			ID:          "s1",
			Name:        "Base",
			FileType:    "application/pdf",
			FileData:    "data:application/pdf;base64,JVBERg==",
			Annotations: []json.RawMessage{json.RawMessage(`{"page":1}`)},
		}
	}

	t.Run("EmptyPatchChangesNothing", func(t *testing.T) {
		sheet := base()
		SheetPatch{}.Apply(&sheet)

		if sheet.Name != "Base" || sheet.FileType != "application/pdf" {
			t.Errorf("Empty patch changed fields: %+v", sheet)
		}
		if len(sheet.Annotations) != 1 {
			t.Errorf("Empty patch changed annotations: %v", sheet.Annotations)
		}
	})

	t.Run("PartialPatchKeepsRest", func(t *testing.T) {
		sheet := base()
		name := "Renamed"
		SheetPatch{Name: &name}.Apply(&sheet)

		if sheet.Name != "Renamed" {
			t.Errorf("Got name %q, expected Renamed", sheet.Name)
		}
		if sheet.FileData == "" || sheet.FileType == "" {
			t.Error("Partial patch dropped unspecified fields")
		}
	})

	t.Run("NonNilEmptyAnnotationsClears", func(t *testing.T) {
		sheet := base()
		SheetPatch{Annotations: []json.RawMessage{}}.Apply(&sheet)

		if len(sheet.Annotations) != 0 {
			t.Errorf("Expected cleared annotations, got %v", sheet.Annotations)
		}
	})

	t.Run("AnnotationsCopiedNotShared", func(t *testing.T) {
		sheet := base()
		note := json.RawMessage(`{"page":9}`)
		SheetPatch{Annotations: []json.RawMessage{note}}.Apply(&sheet)

		note[9] = '0'
		if string(sheet.Annotations[0]) != `{"page":9}` {
			t.Errorf("Applied annotation shares caller storage: %s", sheet.Annotations[0])
		}
	})
}

func TestPlaylistPatchApply(t *testing.T) {
	base := func() Playlist {
		return Playlist{ID: "p1", Name: "Base", SheetIDs: []string{"a"}}
	}

	t.Run("NilSheetIDsUnchanged", func(t *testing.T) {
		playlist := base()
		name := "Renamed"
		PlaylistPatch{Name: &name}.Apply(&playlist)

		if playlist.Name != "Renamed" {
			t.Errorf("Got name %q, expected Renamed", playlist.Name)
		}
		if len(playlist.SheetIDs) != 1 || playlist.SheetIDs[0] != "a" {
			t.Errorf("Nil SheetIDs patch changed membership: %v", playlist.SheetIDs)
		}
	})

	t.Run("EmptySheetIDsClears", func(t *testing.T) {
		playlist := base()
		PlaylistPatch{SheetIDs: []string{}}.Apply(&playlist)

		if len(playlist.SheetIDs) != 0 {
			t.Errorf("Expected cleared membership, got %v", playlist.SheetIDs)
		}
	})
}

func TestRecordInterface(t *testing.T) {
	now := time.Now().UTC()
	var records = []Record{
		Sheet{ID: "s1", CreatedAt: now, UpdatedAt: now},
		Playlist{ID: "p1", CreatedAt: now, UpdatedAt: now},
	}

	for _, r := range records {
		if r.RecordID() == "" {
			t.Error("Expected non-empty record id")
		}
		if !r.Created().Equal(now) || !r.Updated().Equal(now) {
			t.Errorf("Timestamp accessors disagree for %s", r.RecordID())
		}
	}
}

func TestSheetJSONShape(t *testing.T) {
	sheet := Sheet{
		ID:          "s1",
		Name:        "Shape",
		FileType:    "image/png",
		FileData:    "data:image/png;base64,iVBORw==",
		Annotations: []json.RawMessage{},
	}

	data, err := json.Marshal(sheet)
	if err != nil {
		t.Fatalf("Failed to marshal sheet: %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Failed to unmarshal sheet: %v", err)
	}

	for _, key := range []string{"id", "name", "fileType", "fileData", "annotations", "createdAt", "updatedAt"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("Expected key %q in serialized sheet", key)
		}
	}
	if string(fields["annotations"]) != "[]" {
		t.Errorf("Expected empty annotations to serialize as [], got %s", fields["annotations"])
	}
}
