package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/hrms-sync/internal/adapters/api"
	"github.com/ogurasousui/hrms-sync/internal/adapters/rest"
	"github.com/ogurasousui/hrms-sync/internal/core/attendance"
	"github.com/ogurasousui/hrms-sync/internal/core/employee"
	"github.com/ogurasousui/hrms-sync/internal/core/report"
	"github.com/ogurasousui/hrms-sync/internal/platform/config"
	"github.com/ogurasousui/hrms-sync/internal/platform/session"
)

const usage = `usage: hrms [-config path] <command> [flags]

commands:
  dashboard          show today's attendance counts and totals
  employees          list all employees
  employee-add       add an employee (-employee-id -name -email -department)
  employee-delete    delete an employee by primary key (-id)
  attendance         list attendance records (-employee id|all, -status Present|Absent|all)
  attendance-mark    mark attendance (-employee-id -date -status)
`

type app struct {
	employees  *employee.Store
	attendance *attendance.Store
}

func main() {
	// .env は任意。無ければそのまま環境変数を使う。
	_ = godotenv.Load()

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "assets/local.yaml"
	}
	configPath := flag.String("config", defaultPath, "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	tokens := session.NewTokenStore(os.Getenv("HRMS_AUTH_TOKEN"))
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, tokens)

	a := &app{
		employees:  employee.NewStore(rest.NewEmployeeAuthority(client)),
		attendance: attendance.NewStore(rest.NewAttendanceAuthority(client)),
	}

	ctx := context.Background()
	command, commandArgs := args[0], args[1:]

	switch command {
	case "dashboard":
		err = a.runDashboard(ctx)
	case "employees":
		err = a.runEmployees(ctx)
	case "employee-add":
		err = a.runEmployeeAdd(ctx, commandArgs)
	case "employee-delete":
		err = a.runEmployeeDelete(ctx, commandArgs)
	case "attendance":
		err = a.runAttendance(ctx, commandArgs)
	case "attendance-mark":
		err = a.runAttendanceMark(ctx, commandArgs)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%v", err)
	}
}

func (a *app) runDashboard(ctx context.Context) error {
	// 片方の取得が失敗しても残った状態で描画を続ける。
	_ = a.employees.FetchAll(ctx)
	_ = a.attendance.FetchAll(ctx)

	empSnap := a.employees.Snapshot()
	attSnap := a.attendance.Snapshot()
	counts := report.TodaysCounts(attSnap.Records, time.Now())

	fmt.Printf("Total Employees: %d\n", len(empSnap.Employees))
	fmt.Printf("Present Today:   %d\n", counts.Present)
	fmt.Printf("Absent Today:    %d\n", counts.Absent)
	fmt.Printf("Total Records:   %d\n", len(attSnap.Records))

	if empSnap.Err != "" {
		fmt.Printf("employees: %s\n", empSnap.Err)
	}
	if attSnap.Err != "" {
		fmt.Printf("attendance: %s\n", attSnap.Err)
	}
	return nil
}

func (a *app) runEmployees(ctx context.Context) error {
	if err := a.employees.FetchAll(ctx); err != nil {
		return err
	}

	snap := a.employees.Snapshot()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMPLOYEE ID\tNAME\tEMAIL\tDEPARTMENT")
	for _, e := range snap.Employees {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.EmployeeID, e.FullName, e.Email, e.Department)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("%d employee(s)\n", len(snap.Employees))
	return nil
}

func (a *app) runEmployeeAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("employee-add", flag.ExitOnError)
	employeeID := fs.String("employee-id", "", "human-facing employee code (required)")
	name := fs.String("name", "", "full name (required)")
	email := fs.String("email", "", "email address (required)")
	department := fs.String("department", "", "department (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := a.employees.Add(ctx, employee.Draft{
		EmployeeID: *employeeID,
		FullName:   *name,
		Email:      *email,
		Department: *department,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s has been added to the system.\n", created.FullName)
	return nil
}

func (a *app) runEmployeeDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("employee-delete", flag.ExitOnError)
	id := fs.String("id", "", "primary key of the employee (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.employees.Delete(ctx, *id); err != nil {
		return err
	}

	fmt.Println("The employee has been removed from the system.")
	return nil
}

func (a *app) runAttendance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("attendance", flag.ExitOnError)
	employeeFilter := fs.String("employee", report.FilterAll, "employee primary key, or \"all\"")
	statusFilter := fs.String("status", report.FilterAll, "Present, Absent, or \"all\"")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// フィルタの結合に社員スナップショットが要るため両方を取得する。
	if err := a.employees.FetchAll(ctx); err != nil {
		return err
	}
	if err := a.attendance.FetchAll(ctx); err != nil {
		return err
	}

	empSnap := a.employees.Snapshot()
	attSnap := a.attendance.Snapshot()
	filtered := report.FilterRecords(attSnap.Records, empSnap.Employees, *employeeFilter, *statusFilter)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tEMPLOYEE ID\tNAME\tSTATUS")
	for _, r := range filtered {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Date, r.Employee.EmployeeID, r.Employee.FullName, r.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("Showing %d record(s)\n", len(filtered))
	return nil
}

func (a *app) runAttendanceMark(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("attendance-mark", flag.ExitOnError)
	employeeID := fs.String("employee-id", "", "human-facing employee code (required)")
	date := fs.String("date", time.Now().Format("2006-01-02"), "date as YYYY-MM-DD")
	status := fs.String("status", string(attendance.StatusPresent), "Present or Absent")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// 通知に社員名を使うため、先に社員スナップショットを用意する。
	_ = a.employees.FetchAll(ctx)

	created, err := a.attendance.Mark(ctx, attendance.MarkInput{
		EmployeeID: *employeeID,
		Date:       *date,
		Status:     attendance.Status(*status),
	})
	if err != nil {
		return err
	}

	name := "Employee"
	for _, e := range a.employees.Snapshot().Employees {
		if e.EmployeeID == created.Employee.EmployeeID {
			name = e.FullName
			break
		}
	}

	fmt.Printf("%s marked as %s for %s.\n", name, created.Status, created.Date)
	return nil
}
