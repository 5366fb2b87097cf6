package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

var (
	adminPage     int
	adminPageSize int
	adminStatus   int
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Review projects and manage users (admins only)",
}

var adminProjectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects for review",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/admin/projects"); err != nil {
				return err
			}
			params := api.AdminProjectListParams{PageNum: adminPage, PageSize: adminPageSize}
			if cmd.Flags().Changed("status") {
				params.Status = adminStatus
				params.HasStatus = true
			} else {
				// The review queue is the default view.
				params.Status = api.ProjectStatusPending
				params.HasStatus = true
			}
			page, err := a.client.AdminListProjects(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render(a, page, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tGOAL")
				for _, p := range page.List {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\n",
						p.ID, p.Title, projectStatusText(p.Status), p.GoalAmount)
				}
				_ = tw.Flush()
				fmt.Fprintf(w, "page %d/%d, %d projects\n", page.PageNum, page.Pages, page.Total)
			})
		})
	},
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve <projectId>",
	Short: "Approve a pending project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return auditProject(cmd, args[0], api.ProjectStatusFunding, "approved")
	},
}

var adminRejectCmd = &cobra.Command{
	Use:   "reject <projectId>",
	Short: "Reject a pending project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return auditProject(cmd, args[0], api.ProjectStatusFailed, "rejected")
	},
}

func auditProject(cmd *cobra.Command, arg string, status int, verb string) error {
	return runApp(func(a *app) error {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		if err := a.visit("/admin/projects"); err != nil {
			return err
		}
		project, err := a.client.AuditProject(cmd.Context(), id, api.ProjectAuditRequest{Status: status})
		if err != nil {
			return err
		}
		fmt.Printf("Project %d %s (%s)\n", project.ID, verb, projectStatusText(project.Status))
		return nil
	})
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/admin/users"); err != nil {
				return err
			}
			page, err := a.client.AdminListUsers(cmd.Context(), api.AdminUserListParams{
				PageNum: adminPage, PageSize: adminPageSize,
			})
			if err != nil {
				return err
			}
			return render(a, page, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLES")
				for _, u := range page.List {
					names := make([]string, 0, len(u.Roles))
					for _, r := range u.Roles {
						names = append(names, r.Name)
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, strings.Join(names, ","))
				}
				_ = tw.Flush()
				fmt.Fprintf(w, "page %d/%d, %d users\n", page.PageNum, page.Pages, page.Total)
			})
		})
	},
}

var adminGrantCmd = &cobra.Command{
	Use:   "grant <userId> <role>",
	Short: "Grant a role (e.g. ROLE_ADMIN) to an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateRole(cmd, args[0], args[1], true)
	},
}

var adminRevokeCmd = &cobra.Command{
	Use:   "revoke <userId> <role>",
	Short: "Revoke a role from an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateRole(cmd, args[0], args[1], false)
	},
}

func updateRole(cmd *cobra.Command, arg, role string, add bool) error {
	return runApp(func(a *app) error {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		if err := a.visit("/admin/users"); err != nil {
			return err
		}
		user, err := a.client.UpdateUserRole(cmd.Context(), id, api.RoleUpdateRequest{
			RoleName: role, IsAdd: add,
		})
		if err != nil {
			return err
		}
		names := make([]string, 0, len(user.Roles))
		for _, r := range user.Roles {
			names = append(names, r.Name)
		}
		fmt.Printf("User %s roles: %s\n", user.Username, strings.Join(names, ","))
		return nil
	})
}

func init() {
	adminProjectsCmd.Flags().IntVar(&adminStatus, "status", 0, "filter by status (default: pending review)")
	adminCmd.PersistentFlags().IntVar(&adminPage, "page", 1, "page number")
	adminCmd.PersistentFlags().IntVar(&adminPageSize, "page-size", 10, "items per page")

	adminCmd.AddCommand(adminProjectsCmd)
	adminCmd.AddCommand(adminApproveCmd)
	adminCmd.AddCommand(adminRejectCmd)
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminGrantCmd)
	adminCmd.AddCommand(adminRevokeCmd)
	rootCmd.AddCommand(adminCmd)
}
