/*
 * This file is part of hh-records-logic.
 *
 * hh-records-logic is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * hh-records-logic is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with hh-records-logic.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package engine

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/healthhub/hh-records-logic/pkg"
)

const sweepTag = "orphan-sweep"

// NewSweepScheduler runs SweepOrphans every interval, never two at a time. A zero interval disables
// the sweep and returns a nil scheduler.
func NewSweepScheduler(client pkg.RecordsLogicClient, interval, grace time.Duration) (*gocron.Scheduler, error) {
	if interval <= 0 {
		return nil, nil
	}
	s := gocron.NewScheduler(time.UTC)
	s.SetMaxConcurrentJobs(1, gocron.WaitMode)
	if _, err := s.Every(interval).WaitForSchedule().Tag(sweepTag).Do(sweep, client, grace); err != nil {
		return nil, err
	}
	return s, nil
}

func sweep(client pkg.RecordsLogicClient, grace time.Duration) {
	report, err := client.SweepOrphans(context.Background(), grace)
	if err != nil {
		logger().WithError(err).Error("orphan sweep failed")
		return
	}
	logger().Infof("orphan sweep checked %d pins, unpinned %d", report.Checked, len(report.Unpinned))
}
