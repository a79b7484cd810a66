package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/buildermatch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const seedYAML = `
users:
  - id: alice
    username: alice
    display_name: Alice
    avatar: https://img.example/alice.png
    skills:
      - name: React
        level: advanced
        verified: true
      - name: Node.js
        level: Intermediate
    goals: ["Learn new skills", "Build portfolio"]
    reputation_score: 450
    last_active_at: "2025-01-10T12:00:00Z"
    onboarding_completed: true
  - id: bob
    username: bob
    reputation_score: 1200
    trust_level: Legend
    onboarding_completed: true
projects:
  - id: p1
    title: Marketplace
    tech_stack: [React, Node.js]
    status: Recruiting
    creator_id: bob
    team_member_ids: [carol]
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadSeed(t *testing.T) {
	Convey("Given a seed file", t, func() {
		ctx := context.Background()
		store := NewMemStore(ctx)
		defer func() { _ = store.Close() }()
		path := writeSeed(t, seedYAML)

		Convey("When it is loaded", func() {
			users, projects, err := LoadSeed(ctx, path, store)
			So(err, ShouldBeNil)

			Convey("Then every record is stored", func() {
				So(users, ShouldEqual, 2)
				So(projects, ShouldEqual, 1)
				So(store.CountUsers(ctx), ShouldEqual, 2)
				So(store.CountProjects(ctx), ShouldEqual, 1)
			})

			Convey("Then user fields are normalised", func() {
				alice, err := store.User(ctx, "alice")
				So(err, ShouldBeNil)
				So(alice.DisplayName, ShouldEqual, "Alice")
				So(alice.Avatar, ShouldEqual, "https://img.example/alice.png")
				So(alice.Skills, ShouldHaveLength, 2)
				So(alice.Skills[0].Verified, ShouldBeTrue)
				So(alice.Skills[1].Level, ShouldEqual, model.SkillIntermediate)
				So(alice.Goals, ShouldResemble, []string{"Learn new skills", "Build portfolio"})
				So(alice.LastActiveAt.Equal(time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})

			Convey("Then a missing trust level is derived from reputation", func() {
				alice, _ := store.User(ctx, "alice")
				bob, _ := store.User(ctx, "bob")
				So(alice.TrustLevel, ShouldEqual, model.TrustContributor)
				So(bob.TrustLevel, ShouldEqual, model.TrustLegend)
				So(bob.LastActiveAt.IsZero(), ShouldBeTrue)
			})

			Convey("Then projects join their creator", func() {
				got, err := store.RecruitingProjects(ctx, 0)
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].Status, ShouldEqual, model.StatusRecruiting)
				So(got[0].CreatorReputationScore, ShouldEqual, 1200)
			})
		})
	})

	Convey("Given a project without a status", t, func() {
		ctx := context.Background()
		store := NewMemStore(ctx)
		defer func() { _ = store.Close() }()
		path := writeSeed(t, `
users:
  - id: bob
    reputation_score: 300
projects:
  - id: p2
    title: Untagged
    tech_stack: [Go]
    creator_id: bob
  - id: p3
    title: Shipped
    status: completed
    creator_id: bob
`)

		Convey("When it is loaded", func() {
			_, projects, err := LoadSeed(ctx, path, store)
			So(err, ShouldBeNil)
			So(projects, ShouldEqual, 2)

			Convey("Then it is stored as recruiting", func() {
				p2, err := store.Project(ctx, "p2")
				So(err, ShouldBeNil)
				So(p2.Status, ShouldEqual, model.StatusRecruiting)

				got, err := store.RecruitingProjects(ctx, 0)
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].ID, ShouldEqual, "p2")
			})

			Convey("Then an explicit status is kept", func() {
				p3, err := store.Project(ctx, "p3")
				So(err, ShouldBeNil)
				So(p3.Status, ShouldEqual, model.StatusCompleted)
			})
		})
	})

	Convey("Given broken seed input", t, func() {
		ctx := context.Background()
		store := NewMemStore(ctx)
		defer func() { _ = store.Close() }()

		Convey("When the file does not exist", func() {
			_, _, err := LoadSeed(ctx, filepath.Join(t.TempDir(), "none.yaml"), store)
			So(errors.Is(err, ErrLoadSeed), ShouldBeTrue)
		})

		Convey("When a timestamp is malformed", func() {
			path := writeSeed(t, "users:\n  - id: x\n    last_active_at: \"yesterday\"\n")
			_, _, err := LoadSeed(ctx, path, store)
			So(errors.Is(err, ErrLoadSeed), ShouldBeTrue)
			So(errors.Is(err, ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("When a user has no id", func() {
			path := writeSeed(t, "users:\n  - username: nobody\n")
			_, _, err := LoadSeed(ctx, path, store)
			So(errors.Is(err, ErrInvalidRecord), ShouldBeTrue)
		})
	})
}
