package types

// MaxPromptLength is the longest prompt, in characters, accepted by the generate endpoint.
const MaxPromptLength = 1000

// FileEntry is one named source file returned by the model (a React component or a Redux file).
type FileEntry struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// GenerationResult is the normalized outcome of a successful generation.
// It is only ever built from a parsed model response carrying a non-empty htmlContent.
type GenerationResult struct {
	HTMLContent      string      `json:"htmlContent"`
	CSSContent       string      `json:"cssContent"`
	JSContent        string      `json:"jsContent"`
	ReactComponents  []FileEntry `json:"reactComponents"`
	ReduxFiles       []FileEntry `json:"reduxFiles"`
	ProjectStructure string      `json:"projectStructure"`
	ProjectID        string      `json:"projectId"`
	Timestamp        string      `json:"timestamp"`
}
