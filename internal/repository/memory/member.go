package memory

import (
	"context"
	"sync"

	"library-selfcheck/internal/domain"
)

// MemberRepository is an in-memory member store
type MemberRepository struct {
	mu     sync.Mutex
	byID   map[int]*domain.Member
	order  []*domain.Member
	nextID int
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{
		byID:   make(map[int]*domain.Member),
		nextID: 1,
	}
}

func (r *MemberRepository) AddMember(ctx context.Context, firstName, lastName, phone, email string) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, err := domain.NewMember(r.nextID, firstName, lastName, phone, email)
	if err != nil {
		return nil, err
	}
	r.nextID++
	r.byID[member.ID()] = member
	r.order = append(r.order, member)
	return member, nil
}

func (r *MemberRepository) MemberByID(ctx context.Context, id int) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *MemberRepository) ListMembers(ctx context.Context) ([]*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Member, len(r.order))
	copy(out, r.order)
	return out, nil
}

func (r *MemberRepository) FindMembersByLastName(ctx context.Context, lastName string) ([]*domain.Member, error) {
	if lastName == "" {
		return nil, &domain.ValidationError{Reason: "last name query is required"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Member
	for _, m := range r.order {
		if m.LastName() == lastName {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemberRepository) SaveMember(ctx context.Context, member *domain.Member) error {
	if member == nil {
		return &domain.ValidationError{Reason: "member is required"}
	}
	return nil
}

// Restore re-registers a hydrated member, keeping the counter ahead of it
func (r *MemberRepository) Restore(member *domain.Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[member.ID()] = member
	r.order = append(r.order, member)
	if member.ID() >= r.nextID {
		r.nextID = member.ID() + 1
	}
}
