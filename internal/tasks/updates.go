package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ImportFiles Phase = iota
	ExportSheets
)

func (p Phase) String() string {
	switch p {
	case ImportFiles:
		return "import_files"
	case ExportSheets:
		return "export_sheets"
	default:
		return ""
	}
}

func importingUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Importing: %s...", step, total, path),
	}
}

func importedUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, name),
	}
}

func importFailedUpdate(step, total int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %v", step, total, err),
	}
}

func exportingUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSheets,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportedUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSheets,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, path),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSheets,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
