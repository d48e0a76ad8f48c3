package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/cricket-club/internal/domain/membership"
	qb "github.com/riskibarqy/cricket-club/internal/platform/querybuilder"
)

type MembershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func membershipSelectBuilder() *qb.SelectBuilder {
	return qb.Select("club_public_id", "user_id", "role").From("club_memberships")
}

// GetByClubAndUser runs on every authorized request, so it keeps the pooler fallbacks.
func (r *MembershipRepository) GetByClubAndUser(ctx context.Context, clubID, userID string) (membership.Membership, bool, error) {
	query, args, err := membershipSelectBuilder().
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return membership.Membership{}, false, fmt.Errorf("build get membership query: %w", err)
	}

	var row membershipTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
			return r.getSingleParam(ctx, clubID, userID)
		}
		if isNotFound(err) {
			return membership.Membership{}, false, nil
		}
		return membership.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}
	return membershipFromRow(row), true, nil
}

func (r *MembershipRepository) getSingleParam(ctx context.Context, clubID, userID string) (membership.Membership, bool, error) {
	query, _, err := membershipSelectBuilder().
		Where(
			qb.Expr("club_public_id = ($1::text[])[1]"),
			qb.Expr("user_id = ($1::text[])[2]"),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return membership.Membership{}, false, fmt.Errorf("build get membership single param fallback query: %w", err)
	}

	var row membershipTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, pq.Array([]string{clubID, userID})); err != nil {
		if isUnnamedPreparedStatementMissing(err) {
			return r.getLiteral(ctx, clubID, userID)
		}
		if isNotFound(err) {
			return membership.Membership{}, false, nil
		}
		return membership.Membership{}, false, fmt.Errorf("get membership fallback: %w", err)
	}
	return membershipFromRow(row), true, nil
}

func (r *MembershipRepository) getLiteral(ctx context.Context, clubID, userID string) (membership.Membership, bool, error) {
	query, args, err := membershipSelectBuilder().
		Where(
			qb.EqLiteral("club_public_id", clubID),
			qb.EqLiteral("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return membership.Membership{}, false, fmt.Errorf("build get membership literal fallback query: %w", err)
	}

	var row membershipTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return membership.Membership{}, false, nil
		}
		return membership.Membership{}, false, fmt.Errorf("get membership literal fallback: %w", err)
	}
	return membershipFromRow(row), true, nil
}

func membershipFromRow(row membershipTableModel) membership.Membership {
	return membership.Membership{
		ClubID: row.ClubID,
		UserID: row.UserID,
		Role:   membership.Role(row.Role),
	}
}
