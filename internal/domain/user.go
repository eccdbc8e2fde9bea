package domain

// User is a profile that tasks reference weakly: deleting a user nulls the
// reference on its tasks, it never deletes them.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color,omitempty"`
	AvatarBase64 string `json:"avatar_base64,omitempty"`
}
