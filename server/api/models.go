package api

type UploadResponse struct {
	Caption  string `json:"caption"`
	AudioURL string `json:"audio_url"`
}

type CaptionResponse struct {
	Caption string `json:"caption"`
	Text    string `json:"text,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
