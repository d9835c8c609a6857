package user

// ProfileInput carries the editable profile fields; nil fields are left untouched.
type ProfileInput struct {
	Nickname *string `json:"nickname,omitempty"`
	TimeZone *string `json:"timeZone,omitempty"`
}

const (
	maxNicknameLength = 50
	maxTokenLength    = 4096
)
