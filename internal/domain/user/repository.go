package user

import "context"

// Repository defines persistence operations for users.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Save(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// Directory answers existence checks for collaborating services.
type Directory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// Snapshot is the externally visible view of a user, embedded into booking
// payloads.
type Snapshot struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Snapshots resolves user snapshots for collaborating services.
type Snapshots interface {
	Get(ctx context.Context, userID int64) (Snapshot, error)
}
