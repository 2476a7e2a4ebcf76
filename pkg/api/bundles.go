package api

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Dashboard is the fan-out load behind the organization dashboard view.
type Dashboard struct {
	Organization *Result
	Stats        *Result
	Groups       *Result
}

// Calendar is the fan-out load behind the calendar view.
type Calendar struct {
	Records    *Result
	Events     *Result
	DailyStats *Result
}

// DashboardBundle fetches the organization, its stats, and its groups
// concurrently. The group fails as soon as any fetch fails; there is no
// ordering guarantee between the three and no deduplication of repeated
// calls. Discarding the result of an abandoned bundle is always safe.
func (c *Client) DashboardBundle(ctx context.Context, organizationID int64) (*Dashboard, error) {
	g, ctx := errgroup.WithContext(ctx)
	var d Dashboard

	g.Go(func() error {
		res, err := c.Organizations().Get(ctx, organizationID)
		d.Organization = res
		return err
	})
	g.Go(func() error {
		res, err := c.Organizations().Stats(ctx, organizationID)
		d.Stats = res
		return err
	})
	g.Go(func() error {
		res, err := c.Groups().List(ctx, organizationID)
		d.Groups = res
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// CalendarBundle fetches one month of attendance records, timetable events,
// and daily stats concurrently, with the same semantics as DashboardBundle.
func (c *Client) CalendarBundle(ctx context.Context, userID int64, year int, month time.Month) (*Calendar, error) {
	first := NewDate(year, month, 1)
	last := NewDate(year, month+1, 1)
	last = DateOnly{last.AddDate(0, 0, -1)}

	g, ctx := errgroup.WithContext(ctx)
	var cal Calendar

	g.Go(func() error {
		res, err := c.Attendance().List(ctx, ListFilters{UserID: userID, From: first, To: last})
		cal.Records = res
		return err
	})
	g.Go(func() error {
		res, err := c.Timetables().List(ctx, TimetableFilters{From: first, To: last})
		cal.Events = res
		return err
	})
	g.Go(func() error {
		res, err := c.Attendance().DailyStats(ctx, year, month)
		cal.DailyStats = res
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &cal, nil
}
