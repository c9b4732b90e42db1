package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/scoring"
	"github.com/misterclayt0n/fittrack/internal/storage"
	"github.com/misterclayt0n/fittrack/internal/validation"
	"github.com/spf13/cobra"
)

var createGroupCmd = &cobra.Command{
	Use:   "create-group [name]",
	Short: "Create a group and print its join code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if err := validation.Group(validation.GroupInput{Name: name}); err != nil {
			return fmt.Errorf("Invalid group: %w", err)
		}

		p, err := activeProfile()
		if err != nil {
			return err
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		g, err := st.CreateGroup(cmd.Context(), name, p.ID)
		if err != nil {
			return fmt.Errorf("Failed to create group: %w", err)
		}

		fmt.Printf("✅ Created group %s, share the code %s\n",
			g.Name, color.New(color.FgCyan, color.Bold).Sprint(g.Code))
		return nil
	},
}

var joinGroupCmd = &cobra.Command{
	Use:   "join-group [code]",
	Short: "Join a group with its join code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := validation.JoinCode(args[0])
		if err != nil {
			return err
		}

		p, err := activeProfile()
		if err != nil {
			return err
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		g, err := st.JoinGroup(cmd.Context(), code, p.ID)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("No group uses the code %s", code)
		}
		if err != nil {
			return fmt.Errorf("Failed to join group: %w", err)
		}

		fmt.Printf("✅ You are in %s (%d members)\n", g.Name, len(g.MemberIDs))
		return nil
	},
}

var listGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List your groups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile()
		if err != nil {
			return err
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		groups, err := st.ListGroupsForUser(cmd.Context(), p.ID)
		if err != nil {
			return fmt.Errorf("Failed to list groups: %w", err)
		}
		if len(groups) == 0 {
			fmt.Println("You are not in any group yet")
			return nil
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		for _, g := range groups {
			owner := ""
			if g.CreatedBy == p.ID {
				owner = color.New(color.FgYellow).Sprint(" (owner)")
			}
			fmt.Printf("  • %s [%s] %d members%s\n", g.Name, cyan(g.Code), len(g.MemberIDs), owner)
		}
		return nil
	},
}

var deleteGroupCmd = &cobra.Command{
	Use:   "delete-group [name-or-code]",
	Short: "Delete a group you created",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile()
		if err != nil {
			return err
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		g, err := st.GetGroupByName(cmd.Context(), strings.TrimSpace(args[0]), p.ID)
		if errors.Is(err, storage.ErrNotFound) {
			// Not an exact name: try the join code or a case-insensitive name.
			groups, err := st.ListGroupsForUser(cmd.Context(), p.ID)
			if err != nil {
				return fmt.Errorf("Failed to list groups: %w", err)
			}
			if g, err = pickGroup(groups, args[0]); err != nil {
				return err
			}
		} else if err != nil {
			return fmt.Errorf("Failed to find group: %w", err)
		}

		err = st.DeleteGroup(cmd.Context(), g.ID, p.ID)
		if errors.Is(err, storage.ErrForbidden) {
			return fmt.Errorf("Only the creator of %s can delete it", g.Name)
		}
		if err != nil {
			return fmt.Errorf("Failed to delete group: %w", err)
		}

		fmt.Printf("✅ Deleted group %s\n", g.Name)
		return nil
	},
}

// pickGroup selects one of groups by name (case insensitive) or join code.
// With an empty selector it only succeeds when there is a single group.
func pickGroup(groups []models.Group, selector string) (*models.Group, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		switch len(groups) {
		case 0:
			return nil, fmt.Errorf("You are not in any group yet")
		case 1:
			return &groups[0], nil
		default:
			return nil, fmt.Errorf("You are in %d groups, name one", len(groups))
		}
	}

	code := scoring.NormalizeGroupCode(selector)
	for i := range groups {
		if groups[i].Code == code || strings.EqualFold(groups[i].Name, selector) {
			return &groups[i], nil
		}
	}
	return nil, fmt.Errorf("You are not in a group called %q", selector)
}

func init() {
	rootCmd.AddCommand(createGroupCmd)
	rootCmd.AddCommand(joinGroupCmd)
	rootCmd.AddCommand(listGroupsCmd)
	rootCmd.AddCommand(deleteGroupCmd)
}
