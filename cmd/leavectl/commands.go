package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"leavectl/internal/api"
	"leavectl/internal/auth"
	"leavectl/internal/domain/holiday"
	"leavectl/internal/domain/leave"
	"leavectl/internal/report"
	"leavectl/internal/session"
)

type app struct {
	client  *api.Client
	session *session.Manager
}

// require runs the role gate before a protected command, turning a denial
// into the same redirect the web client would perform.
func (a *app) require(roles []auth.Role, destination string) error {
	decision := auth.Authorize(roles, a.session, destination)
	if decision.Allowed {
		return nil
	}
	if decision.RedirectTo == auth.PathLogin {
		return fmt.Errorf("not signed in, run `leavectl login` first")
	}
	return fmt.Errorf("access denied, your area is %s", decision.RedirectTo)
}

func (a *app) actor() leave.Actor {
	u := a.session.CurrentUser()
	if u == nil {
		return leave.Actor{}
	}
	return leave.Actor{ID: u.ID, Role: u.Role}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("--email is required")
	}
	if *password == "" {
		fmt.Print("password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		*password = strings.TrimSpace(line)
	}

	user, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", user.FullName(), user.Role.Label())
	fmt.Printf("your area: %s\n", a.session.RedirectPath())
	return nil
}

func (a *app) whoami() error {
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not signed in")
	}
	u := a.session.CurrentUser()
	if u == nil {
		return fmt.Errorf("session has no user, sign in again")
	}
	fmt.Printf("%s <%s>\n", u.FullName(), u.Email)
	fmt.Printf("role: %s\n", u.Role.Label())
	if u.Department != "" {
		fmt.Printf("department: %s\n", u.Department)
	}
	return nil
}

func (a *app) leaves(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("leaves needs a subcommand: list, create, edit, retract, approve, reject")
	}
	switch args[0] {
	case "list":
		return a.leavesList(ctx, args[1:])
	case "create":
		return a.leavesCreate(ctx, args[1:])
	case "edit":
		return a.leavesEdit(ctx, args[1:])
	case "retract":
		return a.leavesRetract(ctx, args[1:])
	case "approve":
		return a.leavesDecide(ctx, args[1:], leave.StatusApproved)
	case "reject":
		return a.leavesDecide(ctx, args[1:], leave.StatusRejected)
	}
	return fmt.Errorf("unknown leaves subcommand %q", args[0])
}

func (a *app) leavesList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("leaves list", flag.ExitOnError)
	team := fs.Bool("team", false, "list requests awaiting your decision")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		requests []leave.Request
		err      error
	)
	if *team {
		if err := a.require([]auth.Role{auth.RoleManager, auth.RoleHR, auth.RoleAdmin}, auth.PathManager); err != nil {
			return err
		}
		requests, err = a.client.SubordinateLeaves(ctx)
	} else {
		if err := a.require([]auth.Role{auth.RoleEmployee, auth.RoleManager, auth.RoleHR, auth.RoleAdmin}, auth.PathEmployee); err != nil {
			return err
		}
		requests, err = a.client.MyLeaves(ctx)
	}
	if err != nil {
		return err
	}

	if len(requests) == 0 {
		fmt.Println("no leave requests")
		return nil
	}
	for _, r := range requests {
		line := fmt.Sprintf("%-12s %-22s %s .. %s %4g d  %s", r.ID, r.LeaveType.Label(), r.StartDate, r.EndDate, r.Days, r.Status.Label())
		if *team {
			line += "  " + r.RequesterName()
		}
		fmt.Println(line)
	}
	return nil
}

func (a *app) leavesCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("leaves create", flag.ExitOnError)
	typ := fs.String("type", "ANNUAL", "leave type")
	start := fs.String("start", "", "start date (2006-01-02)")
	end := fs.String("end", "", "end date (2006-01-02)")
	reason := fs.String("reason", "", "reason")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.require([]auth.Role{auth.RoleEmployee, auth.RoleManager, auth.RoleHR, auth.RoleAdmin}, auth.PathEmployee); err != nil {
		return err
	}
	if *start == "" || *end == "" {
		return fmt.Errorf("--start and --end are required")
	}
	if strings.TrimSpace(*reason) == "" {
		return fmt.Errorf("--reason is required")
	}

	if days, ok := previewDays(*start, *end); ok {
		fmt.Printf("requesting %g calendar day(s)\n", days)
	}

	created, err := a.client.CreateLeave(ctx, leave.Create{
		LeaveType: leave.CoerceType(strings.ToUpper(*typ)),
		StartDate: *start,
		EndDate:   *end,
		Reason:    *reason,
	})
	if err != nil {
		return err
	}
	fmt.Printf("submitted %s (%s)\n", created.ID, created.Status.Label())
	return nil
}

func (a *app) leavesEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("leaves edit", flag.ExitOnError)
	id := fs.String("id", "", "request id")
	typ := fs.String("type", "", "new leave type")
	start := fs.String("start", "", "new start date")
	end := fs.String("end", "", "new end date")
	reason := fs.String("reason", "", "new reason")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.require([]auth.Role{auth.RoleEmployee, auth.RoleManager, auth.RoleHR, auth.RoleAdmin}, auth.PathEmployee); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	current, err := a.findMine(ctx, *id)
	if err != nil {
		return err
	}

	var upd leave.Update
	if *typ != "" {
		t := leave.CoerceType(strings.ToUpper(*typ))
		upd.LeaveType = &t
	}
	if *start != "" {
		upd.StartDate = start
	}
	if *end != "" {
		upd.EndDate = end
	}
	if *reason != "" {
		upd.Reason = reason
	}

	if err := leave.ValidateEdit(current, a.actor(), upd); err != nil {
		return err
	}
	updated, err := a.client.UpdateLeave(ctx, *id, upd)
	if err != nil {
		return err
	}
	fmt.Printf("updated %s (%s)\n", updated.ID, updated.Status.Label())
	return nil
}

func (a *app) leavesRetract(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("leaves retract", flag.ExitOnError)
	id := fs.String("id", "", "request id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.require([]auth.Role{auth.RoleEmployee, auth.RoleManager, auth.RoleHR, auth.RoleAdmin}, auth.PathEmployee); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	current, err := a.findMine(ctx, *id)
	if err != nil {
		return err
	}
	if err := leave.ValidateRetract(current, a.actor()); err != nil {
		return err
	}

	retracted, err := a.client.RetractLeave(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("retracted %s (%s)\n", retracted.ID, retracted.Status.Label())
	return nil
}

func (a *app) leavesDecide(ctx context.Context, args []string, verdict leave.Status) error {
	fs := flag.NewFlagSet("leaves decide", flag.ExitOnError)
	id := fs.String("id", "", "request id")
	comment := fs.String("comment", "", "manager comment (required for rejections)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.require([]auth.Role{auth.RoleManager, auth.RoleHR, auth.RoleAdmin}, auth.PathManager); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	pending, err := a.client.SubordinateLeaves(ctx)
	if err != nil {
		return err
	}
	current := findRequest(pending, *id)
	if current == nil {
		return fmt.Errorf("request %s not found among your team's requests", *id)
	}

	decision := leave.Decision{Status: verdict, ManagerComment: strings.TrimSpace(*comment)}
	if err := leave.ValidateDecision(current, a.actor(), decision); err != nil {
		return err
	}

	decided, err := a.client.DecideLeave(ctx, *id, decision)
	if err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", decided.ID, decided.Status.Label())
	return nil
}

func (a *app) holidays(ctx context.Context, args []string) error {
	if len(args) > 0 && (args[0] == "add" || args[0] == "rm") {
		return a.holidaysMutate(ctx, args)
	}

	fs := flag.NewFlagSet("holidays", flag.ExitOnError)
	year := fs.Int("year", 0, "filter by calendar year")
	upcoming := fs.Bool("upcoming", false, "only holidays from today on")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.require([]auth.Role{auth.RoleEmployee, auth.RoleManager, auth.RoleHR, auth.RoleAdmin}, auth.PathEmployee); err != nil {
		return err
	}

	list, err := a.client.Holidays(ctx)
	if err != nil {
		return err
	}
	if *year != 0 {
		list = holiday.ForYear(list, *year)
	}
	if *upcoming {
		list = holiday.Upcoming(list, time.Now())
	}
	if len(list) == 0 {
		fmt.Println("no public holidays")
		return nil
	}
	for _, h := range list {
		fmt.Printf("%-12s %s  %s\n", h.ID, h.Date, h.Name)
	}
	return nil
}

func (a *app) holidaysMutate(ctx context.Context, args []string) error {
	if err := a.require([]auth.Role{auth.RoleHR, auth.RoleAdmin}, auth.PathManager); err != nil {
		return err
	}
	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("holidays add", flag.ExitOnError)
		name := fs.String("name", "", "holiday name")
		date := fs.String("date", "", "date (2006-01-02)")
		desc := fs.String("description", "", "description")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *name == "" || *date == "" {
			return fmt.Errorf("--name and --date are required")
		}
		created, err := a.client.CreateHoliday(ctx, holiday.Holiday{Name: *name, Date: *date, Description: *desc})
		if err != nil {
			return err
		}
		fmt.Printf("added %s (%s)\n", created.Name, created.ID)
		return nil
	case "rm":
		fs := flag.NewFlagSet("holidays rm", flag.ExitOnError)
		id := fs.String("id", "", "holiday id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return fmt.Errorf("--id is required")
		}
		if err := a.client.DeleteHoliday(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", *id)
		return nil
	}
	return fmt.Errorf("unknown holidays subcommand %q", args[0])
}

func (a *app) report(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	out := fs.String("out", "leave-history.pdf", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.require([]auth.Role{auth.RoleEmployee, auth.RoleManager, auth.RoleHR, auth.RoleAdmin}, auth.PathEmployee); err != nil {
		return err
	}

	requests, err := a.client.MyLeaves(ctx)
	if err != nil {
		return err
	}

	file, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	defer file.Close()

	if err := report.WriteHistoryPDF(file, a.session.CurrentUser(), requests); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Printf("wrote %s (%d requests)\n", *out, len(requests))
	return nil
}

func (a *app) findMine(ctx context.Context, id string) (*leave.Request, error) {
	mine, err := a.client.MyLeaves(ctx)
	if err != nil {
		return nil, err
	}
	if r := findRequest(mine, id); r != nil {
		return r, nil
	}
	return nil, fmt.Errorf("request %s not found among your requests", id)
}

func findRequest(list []leave.Request, id string) *leave.Request {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

func previewDays(start, end string) (float64, bool) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return 0, false
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return 0, false
	}
	days, err := leave.CalculateDays(from, to)
	if err != nil {
		return 0, false
	}
	return days, true
}
