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
	LoadPreset Phase = iota
	ExportPreset
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case LoadPreset:
		return "load_preset"
	case ExportPreset:
		return "export_preset"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func loadPresetUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadPreset,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Loading preset %s...", name),
	}
}

func exportCompletedUpdate(step, total int, res ExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPreset,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("✓ Exported %s to %s", res.Name, res.File),
		Data:    res,
	}
}

func exportFailedUpdate(step, total int, res ExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPreset,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("✗ Failed to export %s: %v", res.Name, res.Error),
		Data:    res,
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest %s...", path),
	}
}
