package models

// UploadResponse is the 2xx body of an upload. Media uploads fill the file
// fields; CSV uploads fill the combination fields.
type UploadResponse struct {
	Filename     string     `json:"filename"`
	Filepath     string     `json:"filepath"`
	Size         int64      `json:"size"`
	Message      string     `json:"message"`
	Combinations [][]string `json:"combinations,omitempty"`
	Count        int        `json:"count,omitempty"`
	Saved        bool       `json:"saved,omitempty"`
}

// UploadResult is the outcome of one upload. On failure only Success=false,
// Source and Error are set.
type UploadResult struct {
	Success      bool
	Source       string
	Filename     string
	Filepath     string
	Size         int64
	Message      string
	Combinations [][]string
	Error        string
}

func UploadSucceeded(source string, r UploadResponse) UploadResult {
	return UploadResult{
		Success:      true,
		Source:       source,
		Filename:     r.Filename,
		Filepath:     r.Filepath,
		Size:         r.Size,
		Message:      r.Message,
		Combinations: r.Combinations,
	}
}

func UploadFailed(source, msg string) UploadResult {
	return UploadResult{Source: source, Error: msg}
}
