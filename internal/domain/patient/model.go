package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Demographics are mutable; the id is
// assigned at creation and never changes.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Age       int       `db:"age" json:"age"`
	Gender    string    `db:"gender" json:"gender"`
	Phone     string    `db:"phone" json:"phone"`
	District  *string   `db:"district" json:"district,omitempty"`
	State     *string   `db:"state" json:"state,omitempty"`
	Prakriti  *string   `db:"prakriti" json:"prakriti,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
