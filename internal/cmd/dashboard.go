package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staffdeck/staffdeck/internal/authz"
	"github.com/staffdeck/staffdeck/internal/guard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show organization-wide statistics",
	Long: `Show organization-wide statistics: headcount, per-department
aggregates and recent hires.

The detailed panels require the manager or admin role; employees see the
headline numbers only.

Examples:
  staffdeck dashboard
  staffdeck dashboard search jane`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireView(cmd.Context(), guard.ViewDashboard); err != nil {
			return err
		}

		if chart, _ := cmd.Flags().GetBool("chart"); chart {
			if err := app.requireCapability(authz.CapViewDashboardDetails, "view the employee chart"); err != nil {
				return err
			}
			data, err := app.client.EmployeeChart(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		stats, err := app.client.DashboardStats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Employees: %d\n", stats.TotalEmployees)
		fmt.Printf("Users:     %d\n", stats.TotalUsers)

		if !authz.CanUser(app.store.CurrentUser(), authz.CapViewDashboardDetails) {
			return nil
		}

		if len(stats.DepartmentStats) > 0 {
			fmt.Println()
			fmt.Printf("%-20s %8s %12s\n", "DEPARTMENT", "COUNT", "AVG SALARY")
			for _, dept := range stats.DepartmentStats {
				fmt.Printf("%-20s %8d %12.2f\n", dept.Department, dept.Count, dept.AvgSalary)
			}
		}

		if len(stats.RecentHires) > 0 {
			fmt.Println()
			fmt.Println("Recent hires:")
			for _, emp := range stats.RecentHires {
				name := ""
				if emp.User != nil {
					name = emp.User.FullName()
				}
				fmt.Printf("  %-24s %-16s %s\n", name, emp.Department, emp.Position)
			}
		}
		return nil
	},
}

var dashboardSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search employees and users",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireView(cmd.Context(), guard.ViewDashboard); err != nil {
			return err
		}
		if err := app.requireCapability(authz.CapViewDashboardDetails, "search the organization"); err != nil {
			return err
		}

		searchType, _ := cmd.Flags().GetString("type")
		results, err := app.client.Search(cmd.Context(), args[0], searchType)
		if err != nil {
			return err
		}

		if len(results.Employees) == 0 && len(results.Users) == 0 {
			fmt.Println("No matches.")
			return nil
		}

		for _, emp := range results.Employees {
			name := ""
			if emp.User != nil {
				name = emp.User.FullName()
			}
			fmt.Printf("employee  %-24s %-16s %s\n", name, emp.Department, emp.Position)
		}
		for _, user := range results.Users {
			fmt.Printf("user      %-24s %s\n", user.FullName(), user.Email)
		}
		return nil
	},
}

var dashboardDepartmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "Show per-department aggregates",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requireView(cmd.Context(), guard.ViewDashboard); err != nil {
			return err
		}
		if err := app.requireCapability(authz.CapViewDashboardDetails, "view department statistics"); err != nil {
			return err
		}

		stats, err := app.client.DepartmentStats(cmd.Context())
		if err != nil {
			return err
		}

		if len(stats) == 0 {
			fmt.Println("No department data.")
			return nil
		}

		fmt.Printf("%-20s %8s %12s\n", "DEPARTMENT", "COUNT", "AVG SALARY")
		for _, dept := range stats {
			fmt.Printf("%-20s %8d %12.2f\n", dept.Department, dept.Count, dept.AvgSalary)
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().Bool("chart", false, "Print the employee chart dataset as JSON")
	dashboardSearchCmd.Flags().String("type", "all", "What to search (all, employees, users)")

	dashboardCmd.AddCommand(dashboardSearchCmd)
	dashboardCmd.AddCommand(dashboardDepartmentsCmd)
	rootCmd.AddCommand(dashboardCmd)
}
