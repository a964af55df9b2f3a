package services_test

import (
	"context"
	"sort"
	"time"

	"talenttrack-backend/internal/models"
	"talenttrack-backend/internal/repository"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, user := range f.users {
		cp := *user
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Bio != nil {
		user.Bio = *upd.Bio
	}
	if upd.Sport != nil {
		user.Sport = *upd.Sport
	}
	if upd.Location != nil {
		user.Location = *upd.Location
	}
	if upd.VideoURL != nil {
		user.VideoURL = *upd.VideoURL
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	if upd.Age != nil {
		age := *upd.Age
		user.Age = &age
	}
	user.UpdatedAt = time.Now()
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) SetProfilePic(_ context.Context, id, path string) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.ProfilePic = path
	return nil
}

type fakeOpportunityRepo struct {
	opportunities map[string]*models.Opportunity
}

func newFakeOpportunityRepo() *fakeOpportunityRepo {
	return &fakeOpportunityRepo{opportunities: make(map[string]*models.Opportunity)}
}

func (f *fakeOpportunityRepo) Create(_ context.Context, opp *models.Opportunity) error {
	cp := *opp
	f.opportunities[opp.ID] = &cp
	return nil
}

func (f *fakeOpportunityRepo) List(_ context.Context) ([]*models.Opportunity, error) {
	var opps []*models.Opportunity
	for _, opp := range f.opportunities {
		cp := *opp
		opps = append(opps, &cp)
	}
	sort.Slice(opps, func(i, j int) bool {
		return opps[i].CreatedAt.After(opps[j].CreatedAt)
	})
	return opps, nil
}

func (f *fakeOpportunityRepo) ListByScout(ctx context.Context, scoutID string) ([]*models.Opportunity, error) {
	all, _ := f.List(ctx)
	var opps []*models.Opportunity
	for _, opp := range all {
		if opp.ScoutID == scoutID {
			opps = append(opps, opp)
		}
	}
	return opps, nil
}

func (f *fakeOpportunityRepo) AddApplicant(_ context.Context, opportunityID, userID string, appliedAt time.Time) error {
	opp, ok := f.opportunities[opportunityID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, app := range opp.Applicants {
		if app.UserID == userID {
			return repository.ErrAlreadyApplied
		}
	}
	opp.Applicants = append(opp.Applicants, models.Applicant{UserID: userID, AppliedAt: appliedAt})
	return nil
}

type fakeMessageRepo struct {
	messages []*models.Message
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *models.Message) error {
	cp := *msg
	f.messages = append(f.messages, &cp)
	return nil
}

func (f *fakeMessageRepo) Thread(_ context.Context, userA, userB string) ([]*models.Message, error) {
	var msgs []*models.Message
	for _, msg := range f.messages {
		if (msg.SenderID == userA && msg.ReceiverID == userB) ||
			(msg.SenderID == userB && msg.ReceiverID == userA) {
			cp := *msg
			msgs = append(msgs, &cp)
		}
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}
