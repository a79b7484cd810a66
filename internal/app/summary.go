package service

import (
	"context"
	"slices"

	"github.com/okian/buildermatch/internal/domain/model"
	"github.com/okian/buildermatch/internal/domain/types"
	"github.com/okian/buildermatch/pkg/logger"
)

// projectMatches attaches a project summary and quality label to each result.
// A subject that can no longer be read keeps a nil summary.
func (s *Service) projectMatches(ctx context.Context, results []types.MatchResult) []types.Match {
	matches := make([]types.Match, 0, len(results))
	creators := make(map[string]*types.UserSummary)
	for i := range results {
		m := types.Match{MatchResult: results[i], Quality: types.Quality(results[i].TotalScore)}
		project, err := s.store.Project(ctx, results[i].SubjectID)
		if err != nil {
			s.logger.Debug(ctx, "ranked project not readable",
				logger.String("project_id", results[i].SubjectID), logger.Error(err))
		} else {
			m.Project = projectSummary(&project)
			m.Project.Creator = s.creator(ctx, project.CreatorID, creators)
		}
		matches = append(matches, m)
	}
	return matches
}

// memberMatches attaches a user summary and quality label to each result.
func (s *Service) memberMatches(ctx context.Context, results []types.MatchResult) []types.Match {
	matches := make([]types.Match, 0, len(results))
	for i := range results {
		m := types.Match{MatchResult: results[i], Quality: types.Quality(results[i].TotalScore)}
		user, err := s.store.User(ctx, results[i].SubjectID)
		if err != nil {
			s.logger.Debug(ctx, "ranked user not readable",
				logger.String("user_id", results[i].SubjectID), logger.Error(err))
		} else {
			m.User = userSummary(&user, true)
		}
		matches = append(matches, m)
	}
	return matches
}

func (s *Service) creator(ctx context.Context, id string, seen map[string]*types.UserSummary) *types.UserSummary {
	if id == "" {
		return nil
	}
	if c, ok := seen[id]; ok {
		return c
	}
	var summary *types.UserSummary
	if user, err := s.store.User(ctx, id); err == nil {
		summary = userSummary(&user, false)
	}
	seen[id] = summary
	return summary
}

func userSummary(u *model.UserRecord, withSkills bool) *types.UserSummary {
	summary := &types.UserSummary{
		ID:              u.ID,
		Username:        u.Username,
		DisplayName:     u.DisplayName,
		Avatar:          u.Avatar,
		ReputationScore: u.ReputationScore,
		TrustLevel:      string(u.TrustLevel),
	}
	if withSkills {
		summary.Skills = make([]types.SkillSummary, 0, len(u.Skills))
		for _, sk := range u.Skills {
			summary.Skills = append(summary.Skills, types.SkillSummary{
				Name:     sk.Name,
				Level:    string(sk.Level),
				Verified: sk.Verified,
			})
		}
	}
	return summary
}

func projectSummary(p *model.ProjectRecord) *types.ProjectSummary {
	return &types.ProjectSummary{
		ID:        p.ID,
		Title:     p.Title,
		TechStack: slices.Clone(p.TechStack),
		Status:    string(p.Status),
	}
}
