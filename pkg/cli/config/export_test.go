package config

// NewLogger builds a Logger with explicit values, bypassing flag parsing.
func NewLogger(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewRepository builds a Repository with explicit values, bypassing flag parsing.
func NewRepository(backend, projectID, databaseID string) *Repository {
	return &Repository{backend: backend, projectID: projectID, databaseID: databaseID}
}
