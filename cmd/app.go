// Package cmd implements the wfl CLI managing the payday waterfall.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/google/subcommands"
	"github.com/paydrift/waterfall"
	"github.com/paydrift/waterfall/govuk"
	"github.com/paydrift/waterfall/starling"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&balancesCmd{}, "account")

	c.Register(&previewCmd{}, "waterfall")
	c.Register(&runCmd{}, "waterfall")

	c.Register(&initCmd{}, "schedule")
	c.Register(&statusCmd{}, "schedule")
	c.Register(&advanceCmd{}, "schedule")
	c.Register(&resetCmd{}, "schedule")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	scheduleFile = flag.String("schedule-file", defaultFile("schedule.json"), "Path to the persisted schedule file")
	planFile     = flag.String("plan-file", defaultFile("plan.json"), "Path to the allocation plan file")
	accountUID   = flag.String("account-uid", "", "Starling account UID.\n If missing it will read the environment variable "+envAccountUID)
	accessToken  = flag.String("access-token", "", "Starling personal access token.\n If missing it will read the environment variable "+envAccessToken)
	holidaysFile = flag.String("holidays-file", "", "Path to a local copy of the GOV.UK bank-holidays feed.\n When empty the feed is fetched from "+govuk.FeedURL)
	region       = flag.String("region", govuk.EnglandAndWales, "Bank holiday division (england-and-wales, scotland, northern-ireland)")
)

const (
	envAccountUID  = "STARLING_ACCOUNT_UID"
	envAccessToken = "STARLING_ACCESS_TOKEN"
)

// defaultFile places the app's files in the XDG data dir, falling back to the
// working directory when the environment gives us nothing better.
func defaultFile(name string) string {
	path, err := xdg.DataFile(filepath.Join("wfl", name))
	if err != nil {
		return name
	}
	return path
}

// openGateway builds the Starling client from flags, falling back to the environment.
func openGateway() (*starling.Client, error) {
	uid, token := *accountUID, *accessToken
	if uid == "" {
		uid = os.Getenv(envAccountUID)
	}
	if token == "" {
		token = os.Getenv(envAccessToken)
	}
	if uid == "" || token == "" {
		return nil, fmt.Errorf("Starling credentials are not set. Use -account-uid/-access-token flags or the %s/%s environment variables", envAccountUID, envAccessToken)
	}
	return starling.New(uid, token), nil
}

// loadCalendar loads the holiday calendar once for the run, from the local
// file when one is given, from GOV.UK otherwise.
func loadCalendar() (waterfall.HolidayCalendar, error) {
	if *holidaysFile != "" {
		return govuk.Load(*holidaysFile, *region)
	}
	return govuk.Fetch(*region)
}

// loadRunner assembles the orchestrator from the app's configuration.
func loadRunner() (*waterfall.Runner, error) {
	plan, err := waterfall.LoadPlan(*planFile)
	if err != nil {
		return nil, err
	}
	gw, err := openGateway()
	if err != nil {
		return nil, err
	}
	cal, err := loadCalendar()
	if err != nil {
		return nil, err
	}
	return &waterfall.Runner{Gateway: gw, Plan: plan, Calendar: cal}, nil
}

// fail prints the error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
