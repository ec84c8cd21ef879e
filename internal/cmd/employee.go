package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staffdeck/staffdeck/internal/authz"
	"github.com/staffdeck/staffdeck/internal/employees"
	"github.com/staffdeck/staffdeck/internal/guard"
	"github.com/staffdeck/staffdeck/internal/tui"
)

var employeeCmd = &cobra.Command{
	Use:     "employee",
	Aliases: []string{"employees", "emp"},
	Short:   "Manage the employee directory",
	Long: `Manage the employee directory.

Listing, creating and updating require the manager or admin role; deleting
requires admin.

Examples:
  staffdeck employee list --search jane --department Engineering
  staffdeck employee get 64f1c0...
  staffdeck employee browse`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// newEmployeeController builds the list controller for one command run
func newEmployeeController(app *app) *employees.Controller {
	return employees.NewController(app.client,
		employees.WithNotifier(app.notifier),
		employees.WithLogger(app.logger),
		employees.WithConfirmer(func(prompt string) bool {
			ok, err := tui.PromptForConfirmation(prompt, false)
			return err == nil && ok
		}),
	)
}

// employeeApp restores the session and checks the directory capability
func employeeApp(cmd *cobra.Command) (*app, error) {
	app, err := newApp()
	if err != nil {
		return nil, err
	}
	if err := app.requireView(cmd.Context(), guard.ViewEmployees); err != nil {
		return nil, err
	}
	if err := app.requireCapability(authz.CapManageEmployees, "manage employees"); err != nil {
		return nil, err
	}
	return app, nil
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employee records",
	Long: `List employee records, ten per page.

Changing the search term or department filter always starts from the first
page.

Examples:
  staffdeck employee list
  staffdeck employee list --page 2
  staffdeck employee list --search jane --department Engineering`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := employeeApp(cmd)
		if err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		search, _ := cmd.Flags().GetString("search")
		department, _ := cmd.Flags().GetString("department")

		ctrl := newEmployeeController(app)
		err = ctrl.SetQuery(cmd.Context(), employees.QueryUpdate{
			Page:       &page,
			Search:     &search,
			Department: &department,
		})
		if err != nil {
			return err
		}

		result := ctrl.Result()
		if len(result.Items) == 0 {
			fmt.Println("No employees found.")
			return nil
		}

		fmt.Printf("%-10s %-24s %-16s %-18s %-10s %s\n",
			"ID", "NAME", "DEPARTMENT", "POSITION", "STATUS", "RECORD")
		for _, emp := range result.Items {
			name := ""
			if emp.User != nil {
				name = emp.User.FullName()
			}
			fmt.Printf("%-10s %-24s %-16s %-18s %-10s %s\n",
				emp.EmployeeID, name, emp.Department, emp.Position, emp.Status, emp.ID)
		}
		fmt.Printf("\npage %d of %d\n", ctrl.Query().Page, result.TotalPages)
		return nil
	},
}

var employeeGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one employee record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := employeeApp(cmd)
		if err != nil {
			return err
		}

		emp, err := app.client.GetEmployee(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Employee ID: %s\n", emp.EmployeeID)
		if emp.User != nil {
			fmt.Printf("Name:        %s <%s>\n", emp.User.FullName(), emp.User.Email)
		}
		fmt.Printf("Department:  %s\n", emp.Department)
		fmt.Printf("Position:    %s\n", emp.Position)
		fmt.Printf("Salary:      %.2f\n", emp.Salary)
		fmt.Printf("Phone:       %s\n", emp.PhoneNumber)
		fmt.Printf("Status:      %s\n", emp.Status)
		return nil
	},
}

// employeeInputFromFlags reads the shared create/update form flags
func employeeInputFromFlags(cmd *cobra.Command) employees.Input {
	var input employees.Input
	input.EmployeeID, _ = cmd.Flags().GetString("employee-id")
	input.UserID, _ = cmd.Flags().GetString("user-id")
	input.Department, _ = cmd.Flags().GetString("department")
	input.Position, _ = cmd.Flags().GetString("position")
	input.Salary, _ = cmd.Flags().GetString("salary")
	input.PhoneNumber, _ = cmd.Flags().GetString("phone")
	return input
}

func addEmployeeInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("employee-id", "", "Human-readable employee ID (required)")
	cmd.Flags().String("user-id", "", "Platform user account ID (required)")
	cmd.Flags().String("department", "", "Department (required)")
	cmd.Flags().String("position", "", "Position title (required)")
	cmd.Flags().String("salary", "", "Salary, numeric (required)")
	cmd.Flags().String("phone", "", "Phone number")
}

var employeeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an employee record",
	Long: `Create an employee record linked to an existing user account.

Use 'staffdeck employee users' to list accounts without a record yet.

Examples:
  staffdeck employee create --employee-id EMP-7 --user-id 64f1c0... \
    --department Engineering --position Developer --salary 75000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := employeeApp(cmd)
		if err != nil {
			return err
		}

		input := employeeInputFromFlags(cmd)
		if input.Department == "" && tui.ShouldPrompt() {
			input.Department, err = tui.PromptForSelect("Department", employees.Departments)
			if err != nil {
				return err
			}
		}

		ctrl := newEmployeeController(app)
		return ctrl.Create(cmd.Context(), input)
	},
}

var employeeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an employee record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := employeeApp(cmd)
		if err != nil {
			return err
		}

		ctrl := newEmployeeController(app)
		return ctrl.Update(cmd.Context(), args[0], employeeInputFromFlags(cmd))
	},
}

var employeeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an employee record",
	Long: `Delete an employee record. Admin only; asks for confirmation first.

Examples:
  staffdeck employee delete 64f1c0...
  staffdeck employee delete 64f1c0... --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := employeeApp(cmd)
		if err != nil {
			return err
		}
		if err := app.requireCapability(authz.CapDeleteEmployees, "delete employees"); err != nil {
			return err
		}

		ctrl := newEmployeeController(app)
		if yes, _ := cmd.Flags().GetBool("yes"); yes {
			ctrl = employees.NewController(app.client,
				employees.WithNotifier(app.notifier),
				employees.WithLogger(app.logger),
				employees.WithConfirmer(func(string) bool { return true }),
			)
		}

		return ctrl.Delete(cmd.Context(), args[0])
	},
}

var employeeUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List user accounts without an employee record",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := employeeApp(cmd)
		if err != nil {
			return err
		}

		users, err := app.client.AvailableUsers(cmd.Context())
		if err != nil {
			return err
		}

		if len(users) == 0 {
			fmt.Println("Every user account already has an employee record.")
			return nil
		}

		fmt.Printf("%-24s %-28s %s\n", "NAME", "EMAIL", "ID")
		for _, user := range users {
			fmt.Printf("%-24s %-28s %s\n", user.FullName(), user.Email, user.ID)
		}
		return nil
	},
}

var employeeBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the directory interactively",
	Long: `Browse the employee directory in an interactive terminal view with
paging and search.

Examples:
  staffdeck employee browse`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := employeeApp(cmd)
		if err != nil {
			return err
		}

		ctrl := newEmployeeController(app)
		return tui.Run(ctrl, app.store.CurrentUser())
	},
}

func init() {
	employeeListCmd.Flags().Int("page", 1, "Page to show")
	employeeListCmd.Flags().String("search", "", "Match name, email or employee ID")
	employeeListCmd.Flags().String("department", "", "Filter by department")

	addEmployeeInputFlags(employeeCreateCmd)
	addEmployeeInputFlags(employeeUpdateCmd)

	employeeDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	employeeCmd.AddCommand(employeeListCmd)
	employeeCmd.AddCommand(employeeGetCmd)
	employeeCmd.AddCommand(employeeCreateCmd)
	employeeCmd.AddCommand(employeeUpdateCmd)
	employeeCmd.AddCommand(employeeDeleteCmd)
	employeeCmd.AddCommand(employeeUsersCmd)
	employeeCmd.AddCommand(employeeBrowseCmd)

	rootCmd.AddCommand(employeeCmd)
}
