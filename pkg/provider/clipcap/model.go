package clipcap

type PrefixRequest struct {
	Image       string `json:"image"`
	ContentType string `json:"content_type,omitempty"`
}

type PrefixResponse struct {
	Prefix [][]float32 `json:"prefix"`
}

type LogitsRequest struct {
	Prefix [][]float32 `json:"prefix"`
	IDs    []int       `json:"ids"`
}

type LogitsResponse struct {
	Logits []float32 `json:"logits"`
}

type TokenizeRequest struct {
	Text string `json:"text"`
}

type TokenizeResponse struct {
	IDs []int `json:"ids"`
}

type DetokenizeRequest struct {
	IDs []int `json:"ids"`
}

type DetokenizeResponse struct {
	Text string `json:"text"`
}
