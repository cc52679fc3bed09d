package mistral

type Request struct {
	Model    string   `json:"model"`
	Document Document `json:"document"`
}

type Document struct {
	Type     string `json:"type"`
	ImageURL string `json:"image_url"`
}

type Response struct {
	Model string `json:"model"`
	Pages []Page `json:"pages"`
}

type Page struct {
	Index      int         `json:"index"`
	Dimensions *Dimensions `json:"dimensions"`

	Markdown string `json:"markdown"`
}

type Dimensions struct {
	DPI int `json:"dpi"`

	Width  int `json:"width"`
	Height int `json:"height"`
}
