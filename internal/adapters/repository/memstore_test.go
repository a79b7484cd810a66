package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/buildermatch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func user(id string, rep int, trust model.TrustLevel, onboarded bool) model.UserRecord {
	return model.UserRecord{
		CandidateUser: model.CandidateUser{
			ID:                  id,
			ReputationScore:     rep,
			TrustLevel:          trust,
			OnboardingCompleted: onboarded,
		},
		Username: id,
	}
}

func project(id, creator string, status model.ProjectStatus, team ...string) model.ProjectRecord {
	return model.ProjectRecord{
		ID:            id,
		Title:         "project " + id,
		TechStack:     []string{"go"},
		Status:        status,
		CreatorID:     creator,
		TeamMemberIDs: team,
	}
}

func TestMemStore_Records(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		store := NewMemStore(ctx, WithMetricsUpdateInterval(time.Hour))
		defer func() { _ = store.Close() }()

		So(store.CountUsers(ctx), ShouldEqual, 0)
		So(store.CountProjects(ctx), ShouldEqual, 0)

		Convey("When a user is upserted twice", func() {
			created, err := store.UpsertUser(ctx, user("u1", 10, model.TrustNovice, true))
			So(err, ShouldBeNil)
			So(created, ShouldBeTrue)

			created, err = store.UpsertUser(ctx, user("u1", 600, model.TrustExpert, true))
			So(err, ShouldBeNil)
			So(created, ShouldBeFalse)

			Convey("Then the latest record wins", func() {
				got, err := store.User(ctx, "u1")
				So(err, ShouldBeNil)
				So(got.ReputationScore, ShouldEqual, 600)
				So(store.CountUsers(ctx), ShouldEqual, 1)
			})
		})

		Convey("When records have no id", func() {
			_, errU := store.UpsertUser(ctx, model.UserRecord{})
			_, errP := store.UpsertProject(ctx, model.ProjectRecord{})

			Convey("Then they are rejected", func() {
				So(errors.Is(errU, ErrInvalidRecord), ShouldBeTrue)
				So(errors.Is(errP, ErrInvalidRecord), ShouldBeTrue)
			})
		})

		Convey("When unknown ids are looked up", func() {
			_, errU := store.User(ctx, "ghost")
			_, errP := store.Project(ctx, "ghost")
			_, errC := store.ProjectCandidate(ctx, "ghost")
			_, errM := store.MemberCandidates(ctx, "ghost", 10)

			Convey("Then not-found errors are returned", func() {
				So(errors.Is(errU, ErrUserNotFound), ShouldBeTrue)
				So(errors.Is(errP, ErrProjectNotFound), ShouldBeTrue)
				So(errors.Is(errC, ErrProjectNotFound), ShouldBeTrue)
				So(errors.Is(errM, ErrProjectNotFound), ShouldBeTrue)
			})
		})

		Convey("When the caller mutates a slice after upserting", func() {
			p := project("p1", "u1", model.StatusRecruiting)
			_, err := store.UpsertProject(ctx, p)
			So(err, ShouldBeNil)
			p.TechStack[0] = "rust"

			Convey("Then the stored copy is unaffected", func() {
				got, err := store.Project(ctx, "p1")
				So(err, ShouldBeNil)
				So(got.TechStack, ShouldResemble, []string{"go"})
			})
		})
	})
}

func TestMemStore_RecruitingProjects(t *testing.T) {
	Convey("Given projects in several states", t, func() {
		ctx := context.Background()
		store := NewMemStore(ctx)
		defer func() { _ = store.Close() }()

		_, _ = store.UpsertUser(ctx, user("creator", 750, model.TrustExpert, true))
		_, _ = store.UpsertProject(ctx, project("p1", "creator", model.StatusRecruiting))
		_, _ = store.UpsertProject(ctx, project("p2", "creator", model.StatusActive))
		_, _ = store.UpsertProject(ctx, project("p3", "missing", model.StatusRecruiting))
		_, _ = store.UpsertProject(ctx, project("p4", "creator", model.StatusRecruiting))

		Convey("When listing without a cap", func() {
			got, err := store.RecruitingProjects(ctx, 0)
			So(err, ShouldBeNil)

			Convey("Then only recruiting projects are returned in insertion order", func() {
				So(len(got), ShouldEqual, 3)
				So(got[0].ID, ShouldEqual, "p1")
				So(got[1].ID, ShouldEqual, "p3")
				So(got[2].ID, ShouldEqual, "p4")
			})

			Convey("Then the creator is joined", func() {
				So(got[0].CreatorReputationScore, ShouldEqual, 750)
				So(got[0].CreatorTrustLevel, ShouldEqual, model.TrustExpert)
			})

			Convey("Then a missing creator defaults to zero reputation and empty trust", func() {
				So(got[1].CreatorReputationScore, ShouldEqual, 0)
				So(got[1].CreatorTrustLevel, ShouldEqual, model.TrustLevel(""))
			})
		})

		Convey("When listing with a cap", func() {
			got, err := store.RecruitingProjects(ctx, 2)

			Convey("Then the list is truncated", func() {
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 2)
				So(got[1].ID, ShouldEqual, "p3")
			})
		})

		Convey("When the creator's reputation changes", func() {
			_, _ = store.UpsertUser(ctx, user("creator", 1200, model.TrustLegend, true))
			got, err := store.ProjectCandidate(ctx, "p1")

			Convey("Then the join reflects the latest value", func() {
				So(err, ShouldBeNil)
				So(got.CreatorReputationScore, ShouldEqual, 1200)
				So(got.CreatorTrustLevel, ShouldEqual, model.TrustLegend)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := store.RecruitingProjects(cctx, 0)

			Convey("Then the context error is returned", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestMemStore_MemberCandidates(t *testing.T) {
	Convey("Given a project with a creator and a team", t, func() {
		ctx := context.Background()
		store := NewMemStore(ctx)
		defer func() { _ = store.Close() }()

		_, _ = store.UpsertUser(ctx, user("creator", 100, model.TrustContributor, true))
		_, _ = store.UpsertUser(ctx, user("member", 100, model.TrustContributor, true))
		_, _ = store.UpsertUser(ctx, user("fresh", 0, model.TrustNovice, false))
		_, _ = store.UpsertUser(ctx, user("a", 200, model.TrustContributor, true))
		_, _ = store.UpsertUser(ctx, user("b", 300, model.TrustContributor, true))
		_, _ = store.UpsertProject(ctx, project("p1", "creator", model.StatusRecruiting, "member"))

		Convey("When listing member candidates", func() {
			got, err := store.MemberCandidates(ctx, "p1", 0)
			So(err, ShouldBeNil)

			Convey("Then the creator, team members and non-onboarded users are excluded", func() {
				So(len(got), ShouldEqual, 2)
				So(got[0].ID, ShouldEqual, "a")
				So(got[1].ID, ShouldEqual, "b")
			})
		})

		Convey("When listing with a cap of one", func() {
			got, err := store.MemberCandidates(ctx, "p1", 1)

			Convey("Then only the first candidate is returned", func() {
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].ID, ShouldEqual, "a")
			})
		})
	})
}
