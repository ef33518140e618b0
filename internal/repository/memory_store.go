package repository

import (
	"context"
	"sync"

	"skillpath/internal/model"
)

type progressKey struct {
	userID    uint
	roadmapID uint
}

// MemStorage keeps every collection in process memory. It is safe for concurrent use:
// a single RWMutex serializes writers, and records are copied on the way in and out so
// callers never share backing arrays with the store.
type MemStorage struct {
	mu sync.RWMutex

	users      map[uint]model.User
	nextUserID uint

	skills     []model.Skill
	skillIndex map[uint]int

	roadmaps       []model.Roadmap
	roadmapIndex   map[uint]int
	roadmapBySkill map[uint]int // first roadmap registered per skill

	progress       map[uint]model.Progress
	progressByKey  map[progressKey]uint
	nextProgressID uint
}

var _ Store = (*MemStorage)(nil)

// NewMemStorage creates an empty in-memory store. Call Seed to load the catalog.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:          make(map[uint]model.User),
		nextUserID:     1,
		skillIndex:     make(map[uint]int),
		roadmapIndex:   make(map[uint]int),
		roadmapBySkill: make(map[uint]int),
		progress:       make(map[uint]model.Progress),
		progressByKey:  make(map[progressKey]uint),
		nextProgressID: 1,
	}
}

func (s *MemStorage) GetUser(_ context.Context, id uint) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemStorage) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Ids are dense from 1, so walking them in order gives "first created wins".
	for id := uint(1); id < s.nextUserID; id++ {
		if u, ok := s.users[id]; ok && u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemStorage) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := *user
	u.ID = s.nextUserID
	s.nextUserID++
	s.users[u.ID] = u
	return &u, nil
}

func (s *MemStorage) GetSkills(_ context.Context) ([]model.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Skill, len(s.skills))
	copy(out, s.skills)
	return out, nil
}

func (s *MemStorage) GetRoadmap(_ context.Context, skillID uint) (*model.Roadmap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.roadmapBySkill[skillID]
	if !ok {
		return nil, nil
	}
	r := s.roadmaps[i]
	return &r, nil
}

func (s *MemStorage) GetRoadmapByID(_ context.Context, id uint) (*model.Roadmap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.roadmapIndex[id]
	if !ok {
		return nil, nil
	}
	r := s.roadmaps[i]
	return &r, nil
}

func (s *MemStorage) GetProgress(_ context.Context, userID, roadmapID uint) (*model.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.progressByKey[progressKey{userID: userID, roadmapID: roadmapID}]
	if !ok {
		return nil, nil
	}
	p := copyProgress(s.progress[id])
	return &p, nil
}

func (s *MemStorage) UpdateProgress(_ context.Context, progress *model.Progress) (*model.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := copyProgress(*progress)
	key := progressKey{userID: p.UserID, roadmapID: p.RoadmapID}

	if p.ID == 0 {
		if existing, ok := s.progressByKey[key]; ok {
			p.ID = existing
		} else {
			p.ID = s.nextProgressID
			s.nextProgressID++
		}
	} else if p.ID >= s.nextProgressID {
		s.nextProgressID = p.ID + 1
	}

	// The id may be moving to a different (user, roadmap) pair, and the pair may have
	// been owned by another id: drop both stale index entries.
	if prev, ok := s.progress[p.ID]; ok {
		delete(s.progressByKey, progressKey{userID: prev.UserID, roadmapID: prev.RoadmapID})
	}
	if other, ok := s.progressByKey[key]; ok && other != p.ID {
		delete(s.progress, other)
	}

	s.progress[p.ID] = p
	s.progressByKey[key] = p.ID

	out := copyProgress(p)
	return &out, nil
}

func (s *MemStorage) Seed(_ context.Context, skills []model.Skill, roadmaps []model.Roadmap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sk := range skills {
		if i, ok := s.skillIndex[sk.ID]; ok {
			s.skills[i] = sk
			continue
		}
		s.skillIndex[sk.ID] = len(s.skills)
		s.skills = append(s.skills, sk)
	}

	for _, r := range roadmaps {
		if i, ok := s.roadmapIndex[r.ID]; ok {
			s.roadmaps[i] = r
			continue
		}
		i := len(s.roadmaps)
		s.roadmapIndex[r.ID] = i
		s.roadmaps = append(s.roadmaps, r)
		if _, taken := s.roadmapBySkill[r.SkillID]; !taken {
			s.roadmapBySkill[r.SkillID] = i
		}
	}
	return nil
}

func copyProgress(p model.Progress) model.Progress {
	steps := make([]string, len(p.CompletedSteps))
	copy(steps, p.CompletedSteps)
	p.CompletedSteps = steps
	return p
}
