package hearings

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCreateCommandValidate(t *testing.T) {
	base := CreateCommand{
		OfficeID:   uuid.New(),
		OfficialID: uuid.New(),
		From:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Scheduled:  10,
		Attended:   8,

		PostponedExternal:    1,
		PostponedJustified:   1,
		PostponedUnjustified: 0,
	}

	tests := []struct {
		name   string
		mutate func(*CreateCommand)
		want   error
	}{
		{
			name:   "balanced outcomes pass",
			mutate: func(c *CreateCommand) {},
			want:   nil,
		},
		{
			name:   "outcomes under scheduled fail",
			mutate: func(c *CreateCommand) { c.Attended = 7 },
			want:   ErrUnbalanced,
		},
		{
			name:   "outcomes over scheduled fail",
			mutate: func(c *CreateCommand) { c.PostponedUnjustified = 5 },
			want:   ErrUnbalanced,
		},
		{
			name:   "missing official fails",
			mutate: func(c *CreateCommand) { c.OfficialID = uuid.Nil },
			want:   ErrInvalid,
		},
		{
			name:   "inverted window fails",
			mutate: func(c *CreateCommand) { c.To = c.From.AddDate(0, -1, 0) },
			want:   ErrInvalid,
		},
		{
			name: "negative count fails",
			mutate: func(c *CreateCommand) {
				c.Attended = -1
			},
			want: ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := base
			tt.mutate(&cmd)

			err := cmd.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
