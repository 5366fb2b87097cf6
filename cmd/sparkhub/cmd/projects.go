package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

var (
	projectsPage     int
	projectsPageSize int
	projectsCategory int64
	projectsStatus   int
	commentSort      string
	projectFile      string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Browse and manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse the project catalogue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/home"); err != nil {
				return err
			}
			params := api.ProjectListParams{
				PageNum:    projectsPage,
				PageSize:   projectsPageSize,
				CategoryID: projectsCategory,
			}
			if cmd.Flags().Changed("status") {
				params.Status = projectsStatus
				params.HasStatus = true
			}
			page, err := a.client.ListProjects(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render(a, page, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tFUNDED\tENDS")
				for _, p := range page.List {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
						p.ID, p.Title, projectStatusText(p.Status),
						fundingPercent(p.CurrentAmount, p.GoalAmount), p.EndTime)
				}
				_ = tw.Flush()
				fmt.Fprintf(w, "page %d/%d, %d projects\n", page.PageNum, page.Pages, page.Total)
			})
		})
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one project with its rewards and comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.visit("/project/" + args[0]); err != nil {
				return err
			}
			project, err := a.client.GetProject(cmd.Context(), id)
			if err != nil {
				return err
			}
			comments, err := a.client.ListComments(cmd.Context(), id, commentSort)
			if err != nil {
				return err
			}

			type detail struct {
				Project  api.Project   `json:"project" yaml:"project"`
				Comments []api.Comment `json:"comments" yaml:"comments"`
			}
			return render(a, detail{project, comments}, func(w io.Writer) {
				printProject(w, a, project)
				fmt.Fprintf(w, "\nComments (%d):\n", len(comments))
				printCommentTree(w, comments, 0)
			})
		})
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create -f <project.yaml>",
	Short: "Start a new project",
	Long: `Start a new project from a YAML description:

  title: Solar Lamp
  description: A lamp that charges in daylight.
  coverImage: /uploads/lamp.png
  goalAmount: 5000
  endTime: "2026-12-31T00:00:00"
  categoryId: 1
  rewards:
    - title: Early bird
      description: One lamp
      amount: 25
      stock: 100

The project enters review and becomes visible once approved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/create"); err != nil {
				return err
			}
			var req api.ProjectCreateRequest
			if err := readYAMLFile(projectFile, &req); err != nil {
				return err
			}
			project, err := a.client.CreateProject(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Project %d created, awaiting review\n", project.ID)
			return nil
		})
	},
}

var projectsEditCmd = &cobra.Command{
	Use:   "edit <id> -f <project.yaml>",
	Short: "Update one of your projects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.visit("/project/edit/" + args[0]); err != nil {
				return err
			}
			var req api.ProjectUpdateRequest
			if err := readYAMLFile(projectFile, &req); err != nil {
				return err
			}
			project, err := a.client.UpdateProject(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Printf("Project %d updated\n", project.ID)
			return nil
		})
	},
}

var projectsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your own projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/my-projects"); err != nil {
				return err
			}
			projects, err := a.client.MyProjects(cmd.Context())
			if err != nil {
				return err
			}
			return render(a, projects, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tFUNDED")
				for _, p := range projects {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
						p.ID, p.Title, projectStatusText(p.Status),
						fundingPercent(p.CurrentAmount, p.GoalAmount))
				}
				_ = tw.Flush()
			})
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List project categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			cats, err := a.client.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			return render(a, cats, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tNAME")
				for _, c := range cats {
					fmt.Fprintf(tw, "%d\t%s\n", c.ID, c.Name)
				}
				_ = tw.Flush()
			})
		})
	},
}

func printProject(w io.Writer, a *app, p api.Project) {
	fmt.Fprintf(w, "#%d %s [%s]\n", p.ID, p.Title, projectStatusText(p.Status))
	fmt.Fprintf(w, "%s\n", p.Description)
	fmt.Fprintf(w, "Funded: %.2f / %.2f (%s), ends %s\n",
		p.CurrentAmount, p.GoalAmount,
		fundingPercent(p.CurrentAmount, p.GoalAmount), p.EndTime)
	if cover := api.ResolveAssetURL(a.cfg.ResolvedAssetOrigin(), p.CoverImage); cover != "" {
		fmt.Fprintf(w, "Cover: %s\n", cover)
	}
	if p.IsFavorite {
		fmt.Fprintln(w, "In your favorites")
	}
	if len(p.Rewards) > 0 {
		fmt.Fprintln(w, "\nRewards:")
		tw := table(w)
		fmt.Fprintln(tw, "  ID\tTITLE\tAMOUNT\tSTOCK")
		for _, r := range p.Rewards {
			fmt.Fprintf(tw, "  %d\t%s\t%.2f\t%d\n", r.ID, r.Title, r.Amount, r.Stock)
		}
		_ = tw.Flush()
	}
}

func printCommentTree(w io.Writer, comments []api.Comment, depth int) {
	for _, c := range comments {
		for i := 0; i < depth; i++ {
			fmt.Fprint(w, "  ")
		}
		liked := ""
		if c.IsLiked {
			liked = " (liked)"
		}
		fmt.Fprintf(w, "[%d] %s: %s (+%d)%s\n", c.ID, c.Username, c.Content, c.LikeCount, liked)
		printCommentTree(w, c.Replies, depth+1)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func readYAMLFile(path string, out any) error {
	if path == "" {
		return fmt.Errorf("a file is required, pass -f <file.yaml>")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func init() {
	projectsListCmd.Flags().IntVar(&projectsPage, "page", 1, "page number")
	projectsListCmd.Flags().IntVar(&projectsPageSize, "page-size", 10, "projects per page")
	projectsListCmd.Flags().Int64Var(&projectsCategory, "category", 0, "filter by category id")
	projectsListCmd.Flags().IntVar(&projectsStatus, "status", 0, "filter by status (0=pending 1=funding 2=successful 3=failed)")
	projectsShowCmd.Flags().StringVar(&commentSort, "sort", api.CommentSortTime, "comment order: time or hotness")
	projectsCreateCmd.Flags().StringVarP(&projectFile, "file", "f", "", "project description YAML")
	projectsEditCmd.Flags().StringVarP(&projectFile, "file", "f", "", "project description YAML")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsEditCmd)
	projectsCmd.AddCommand(projectsMineCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(categoriesCmd)
}
