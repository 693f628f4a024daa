package response_models

type GreetingResponse struct {
	MemorialID string `json:"memorial_id"`
	Stage      string `json:"stage"`
	State      string `json:"state,omitempty"`

	AudioPath string `json:"audio_path,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
	VideoPath string `json:"video_path,omitempty"`
}

type SuggestedPhotoResponse struct {
	PhotoID string `json:"photo_id"`
	Path    string `json:"path"`
	Caption string `json:"caption,omitempty"`
}
