package model_test

import (
	"testing"

	model "github.com/okian/buildermatch/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParsers(t *testing.T) {
	convey.Convey("Given raw enum strings", t, func() {
		convey.Convey("When parsing trust levels", func() {
			convey.So(model.ParseTrustLevel("  Expert "), convey.ShouldEqual, model.TrustExpert)
			convey.So(model.ParseTrustLevel("LEGEND"), convey.ShouldEqual, model.TrustLegend)

			convey.Convey("Then unknown values are kept and reported as unknown", func() {
				lvl := model.ParseTrustLevel("Wizard")
				convey.So(lvl, convey.ShouldEqual, model.TrustLevel("wizard"))
				convey.So(lvl.Known(), convey.ShouldBeFalse)
				convey.So(model.TrustNovice.Known(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When parsing project statuses", func() {
			convey.So(model.ParseProjectStatus("Recruiting"), convey.ShouldEqual, model.StatusRecruiting)
			convey.So(model.ParseProjectStatus("archived").Known(), convey.ShouldBeTrue)
			convey.So(model.ParseProjectStatus("paused").Known(), convey.ShouldBeFalse)
		})

		convey.Convey("When parsing skill levels", func() {
			convey.So(model.ParseSkillLevel(" Advanced"), convey.ShouldEqual, model.SkillAdvanced)
		})
	})
}

func TestTrustLevelForReputation(t *testing.T) {
	convey.Convey("Given reputation scores across the tier boundaries", t, func() {
		cases := []struct {
			score int
			want  model.TrustLevel
		}{
			{-5, model.TrustNovice},
			{0, model.TrustNovice},
			{99, model.TrustNovice},
			{100, model.TrustContributor},
			{499, model.TrustContributor},
			{500, model.TrustExpert},
			{999, model.TrustExpert},
			{1000, model.TrustLegend},
			{5000, model.TrustLegend},
		}

		convey.Convey("Then each maps to the expected tier", func() {
			for _, c := range cases {
				convey.So(model.TrustLevelForReputation(c.score), convey.ShouldEqual, c.want)
			}
		})
	})
}

func TestUpdateSubjectID(t *testing.T) {
	convey.Convey("Given updates of both kinds", t, func() {
		userUpdate := model.Update{
			ID:   "u-1",
			Kind: model.UpdateUser,
			User: &model.UserRecord{CandidateUser: model.CandidateUser{ID: "alice"}},
		}
		projectUpdate := model.Update{
			ID:      "u-2",
			Kind:    model.UpdateProject,
			Project: &model.ProjectRecord{ID: "proj-1"},
		}

		convey.Convey("Then SubjectID returns the carried record id", func() {
			convey.So(userUpdate.SubjectID(), convey.ShouldEqual, "alice")
			convey.So(projectUpdate.SubjectID(), convey.ShouldEqual, "proj-1")
		})

		convey.Convey("And a mismatched kind yields an empty id", func() {
			broken := model.Update{ID: "u-3", Kind: model.UpdateUser}
			convey.So(broken.SubjectID(), convey.ShouldEqual, "")
		})
	})
}
