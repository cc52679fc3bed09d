package custom

type InferenceRequest struct {
	Prompt string `json:"prompt"`
	Image  string `json:"image_base64"`
}

type InferenceResponse struct {
	Text string `json:"text"`
}
