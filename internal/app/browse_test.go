package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/cmcleod/classpulse/internal/app"
	"github.com/cmcleod/classpulse/internal/domain/model"
	"github.com/cmcleod/classpulse/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func visibleIDs(ctx context.Context, svc *service.Service) []int {
	teachers := svc.VisibleRoster(ctx)
	ids := make([]int, 0, len(teachers))
	for _, t := range teachers {
		ids = append(ids, t.ID)
	}
	return ids
}

func visibleNames(teachers []model.Teacher) []string {
	names := make([]string, 0, len(teachers))
	for _, t := range teachers {
		names = append(names, t.Name)
	}
	return names
}

func TestService_Filtering(t *testing.T) {
	Convey("Given a started service on the sample roster", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		svc, _ := startedService(ctx)
		defer svc.Stop()

		Convey("When no filters are set", func() {
			Convey("Then the roster should list every teacher by name", func() {
				names := visibleNames(svc.VisibleRoster(ctx))
				So(names, ShouldResemble, []string{
					"Dr. Kavita Joshi",
					"Dr. Priya Sharma",
					"Dr. Rajesh Kumar",
					"Dr. Sunita Verma",
					"Prof. Anil Mehta",
					"Prof. Vikram Singh",
				})
			})
		})

		Convey("When filtering by department", func() {
			svc.SetDepartment(ctx, "Computer Science")

			Convey("Then only that department should remain", func() {
				So(visibleIDs(ctx, svc), ShouldResemble, []int{1, 4})
			})

			Convey("And resetting to all should restore everyone", func() {
				svc.SetDepartment(ctx, roster.DepartmentAll)
				So(len(svc.VisibleRoster(ctx)), ShouldEqual, 6)
			})
		})

		Convey("When searching", func() {
			Convey("Then matching should ignore case", func() {
				svc.SetSearch(ctx, "KuMaR")
				So(visibleIDs(ctx, svc), ShouldResemble, []int{1})
			})

			Convey("Then subject text should match too", func() {
				svc.SetSearch(ctx, "linear")
				So(visibleIDs(ctx, svc), ShouldResemble, []int{2})
			})

			Convey("Then a blank query should match everything", func() {
				svc.SetSearch(ctx, "   ")
				So(len(svc.VisibleRoster(ctx)), ShouldEqual, 6)
			})
		})

		Convey("When combining department and search", func() {
			svc.SetDepartment(ctx, "Computer Science")
			svc.SetSearch(ctx, "operating")

			Convey("Then both filters should apply", func() {
				So(visibleIDs(ctx, svc), ShouldResemble, []int{4})
			})
		})
	})
}

func TestService_Sorting(t *testing.T) {
	Convey("Given a started service with mixed feedback", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		svc, _ := startedService(ctx)
		defer svc.Stop()

		// Teacher 4 averages 9.0, teacher 1 averages 8.0, teacher 2
		// has the most entries.
		submitOnce(ctx, svc, 4, 9, "Outstanding lab sessions")
		submitOnce(ctx, svc, 1, 8, "Clear and well paced")
		submitOnce(ctx, svc, 2, 6, "A bit rushed")
		submitOnce(ctx, svc, 2, 7, "Improved over the term")
		submitOnce(ctx, svc, 2, 7, "Good problem sets")

		Convey("When sorting by rating", func() {
			So(svc.SetSort(ctx, roster.SortByRating), ShouldBeNil)

			Convey("Then rated teachers should lead in rating order", func() {
				So(visibleIDs(ctx, svc)[:3], ShouldResemble, []int{4, 1, 2})
			})
		})

		Convey("When sorting by feedback count", func() {
			So(svc.SetSort(ctx, roster.SortByFeedbacks), ShouldBeNil)

			Convey("Then the busiest teacher should lead", func() {
				So(visibleIDs(ctx, svc)[0], ShouldEqual, 2)
			})
		})

		Convey("When setting an unknown sort key", func() {
			err := svc.SetSort(ctx, roster.SortKey("stars"))

			Convey("Then it should be rejected and the order kept", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, service.ErrInvalidSort), ShouldBeTrue)
				So(svc.Browse().Sort, ShouldEqual, roster.SortByName)
			})
		})
	})
}

func TestService_SearchVisibility(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		svc, _ := startedService(ctx)
		defer svc.Stop()

		Convey("When opening the search box", func() {
			svc.OpenSearch(ctx)

			Convey("Then it should be visible", func() {
				So(svc.Browse().SearchOpen, ShouldBeTrue)
			})
		})

		Convey("When closing the search box with a query set", func() {
			svc.OpenSearch(ctx)
			svc.SetSearch(ctx, "kumar")
			svc.CloseSearch(ctx)

			Convey("Then the query should be dropped with the box", func() {
				So(svc.Browse().SearchOpen, ShouldBeFalse)
				So(svc.Browse().Search, ShouldEqual, "")
				So(len(svc.VisibleRoster(ctx)), ShouldEqual, 6)
			})
		})
	})
}

func TestService_ClearFilters(t *testing.T) {
	Convey("Given a service with every browsing control changed", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		svc, _ := startedService(ctx)
		defer svc.Stop()

		svc.OpenSearch(ctx)
		svc.SetSearch(ctx, "physics")
		svc.SetDepartment(ctx, "Physics")
		So(svc.SetSort(ctx, roster.SortByRating), ShouldBeNil)
		So(svc.ActivateCard(ctx, service.CardReviews), ShouldBeNil)

		Convey("When clearing all filters", func() {
			svc.ClearFilters(ctx)

			Convey("Then every control should be back at its default", func() {
				b := svc.Browse()
				So(b.Search, ShouldEqual, "")
				So(b.Department, ShouldEqual, roster.DepartmentAll)
				So(b.Sort, ShouldEqual, roster.SortByName)
				So(b.SearchOpen, ShouldBeFalse)
				So(b.ActiveCard, ShouldEqual, service.CardNone)
			})
		})
	})
}

func TestService_ActivateCard(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		svc, _ := startedService(ctx)
		defer svc.Stop()

		Convey("When activating the faculty card", func() {
			svc.SetDepartment(ctx, "Physics")
			svc.SetSearch(ctx, "quantum")
			So(svc.ActivateCard(ctx, service.CardFaculty), ShouldBeNil)

			Convey("Then it should open search and reset the filters", func() {
				b := svc.Browse()
				So(b.ActiveCard, ShouldEqual, service.CardFaculty)
				So(b.SearchOpen, ShouldBeTrue)
				So(b.Department, ShouldEqual, roster.DepartmentAll)
				So(b.Search, ShouldEqual, "")
			})
		})

		Convey("When activating the departments card", func() {
			svc.OpenSearch(ctx)
			svc.SetDepartment(ctx, "Physics")
			So(svc.ActivateCard(ctx, service.CardDepartments), ShouldBeNil)

			Convey("Then it should only close the search box", func() {
				b := svc.Browse()
				So(b.ActiveCard, ShouldEqual, service.CardDepartments)
				So(b.SearchOpen, ShouldBeFalse)
				So(b.Department, ShouldEqual, "Physics")
			})
		})

		Convey("When activating the reviews card", func() {
			svc.OpenSearch(ctx)
			So(svc.ActivateCard(ctx, service.CardReviews), ShouldBeNil)

			Convey("Then it should close search and sort by feedback count", func() {
				b := svc.Browse()
				So(b.ActiveCard, ShouldEqual, service.CardReviews)
				So(b.SearchOpen, ShouldBeFalse)
				So(b.Sort, ShouldEqual, roster.SortByFeedbacks)
			})
		})

		Convey("When activating the same card twice", func() {
			So(svc.ActivateCard(ctx, service.CardReviews), ShouldBeNil)
			So(svc.ActivateCard(ctx, service.CardReviews), ShouldBeNil)

			Convey("Then the highlight should toggle off but effects stay", func() {
				b := svc.Browse()
				So(b.ActiveCard, ShouldEqual, service.CardNone)
				So(b.Sort, ShouldEqual, roster.SortByFeedbacks)
			})
		})

		Convey("When activating an unknown card", func() {
			err := svc.ActivateCard(ctx, service.Card("bogus"))

			Convey("Then it should be rejected", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, service.ErrUnknownCard), ShouldBeTrue)
			})
		})
	})
}

func TestService_Departments(t *testing.T) {
	Convey("Given the sample roster", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		svc, _ := startedService(ctx)
		defer svc.Stop()

		Convey("Then departments should list in first-seen order", func() {
			So(svc.Departments(), ShouldResemble, []string{
				"Computer Science",
				"Mathematics",
				"Physics",
				"Electronics",
				"English",
			})
		})
	})
}
