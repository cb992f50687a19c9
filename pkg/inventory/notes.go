package inventory

// ExtractNotes returns the first non-empty note-like value in the fixed
// column priority order.
func ExtractNotes(row RawRecord) string {
	for _, col := range NoteColumns {
		if _, ok := row[col]; ok {
			if s := CleanString(row[col]); s != "" {
				return s
			}
		}
	}
	return ""
}
