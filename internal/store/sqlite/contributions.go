package sqlite

import (
	"context"

	"github.com/giftwell/giftwell-server/internal/domain"
)

// CreateContribution inserts a contribution. No uniqueness applies:
// any user can contribute to the same item any number of times.
func (s *Store) CreateContribution(ctx context.Context, c *domain.Contribution) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contributions (id, item_id, user_id, amount, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID,
		c.ItemID,
		c.UserID,
		c.Amount.String(),
		formatTime(c.CreatedAt),
	)
	return err
}
