package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"library-selfcheck/internal/domain"
	"library-selfcheck/internal/repository/memory"
)

type MemberRepository struct {
	db  *sql.DB
	mem *memory.MemberRepository
}

func (r *MemberRepository) AddMember(ctx context.Context, firstName, lastName, phone, email string) (*domain.Member, error) {
	member, err := r.mem.AddMember(ctx, firstName, lastName, phone, email)
	if err != nil {
		return nil, err
	}
	query := `INSERT INTO members (id, first_name, last_name, phone, email, fines) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, member.ID(), member.FirstName(), member.LastName(), member.Phone(), member.Email(), member.Fines()); err != nil {
		return nil, fmt.Errorf("failed to persist member %d: %w", member.ID(), err)
	}
	return member, nil
}

func (r *MemberRepository) MemberByID(ctx context.Context, id int) (*domain.Member, error) {
	return r.mem.MemberByID(ctx, id)
}

func (r *MemberRepository) ListMembers(ctx context.Context) ([]*domain.Member, error) {
	return r.mem.ListMembers(ctx)
}

func (r *MemberRepository) FindMembersByLastName(ctx context.Context, lastName string) ([]*domain.Member, error) {
	return r.mem.FindMembersByLastName(ctx, lastName)
}

func (r *MemberRepository) SaveMember(ctx context.Context, member *domain.Member) error {
	if member == nil {
		return &domain.ValidationError{Reason: "member is required"}
	}
	query := `UPDATE members SET fines = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, member.Fines(), member.ID()); err != nil {
		return fmt.Errorf("failed to save member %d: %w", member.ID(), err)
	}
	return nil
}
