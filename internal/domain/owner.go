package domain

// Owner identifies the authenticated user on whose behalf a gateway call runs.
// Every product and movement row is scoped to one owner.
type Owner struct {
	UserID string
	Email  string
}

func (o Owner) IsZero() bool {
	return o.UserID == ""
}
