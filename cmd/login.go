package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/utils"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [username|id]",
	Short: "Switch to an existing profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if utils.DraftExists() {
			return fmt.Errorf("A workout is in progress, end or cancel it first")
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		profiles, err := st.ListProfiles(cmd.Context())
		if err != nil {
			return fmt.Errorf("Failed to list profiles: %w", err)
		}
		p, err := matchProfile(profiles, args[0])
		if err != nil {
			return err
		}

		if err := utils.SaveActiveProfile(p); err != nil {
			return fmt.Errorf("Failed to save active profile: %w", err)
		}

		fmt.Printf("✅ Signed in as %s\n", color.New(color.FgGreen, color.Bold).Sprint(p.Username))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the active profile on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		if utils.DraftExists() {
			return fmt.Errorf("A workout is in progress, end or cancel it first")
		}
		if err := utils.ClearActiveProfile(); err != nil {
			return fmt.Errorf("Failed to sign out: %w", err)
		}
		fmt.Println("✅ Signed out")
		return nil
	},
}

// matchProfile finds a profile by exact ID or by username (case
// insensitive). Usernames are not unique, so an ambiguous name is an error.
func matchProfile(profiles []models.Profile, selector string) (*models.Profile, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("username or id is empty")
	}

	var byName []int
	for i := range profiles {
		if profiles[i].ID == selector {
			return &profiles[i], nil
		}
		if strings.EqualFold(profiles[i].Username, selector) {
			byName = append(byName, i)
		}
	}

	switch len(byName) {
	case 0:
		return nil, fmt.Errorf("No profile called %q, run `fittrack signup` to create one", selector)
	case 1:
		return &profiles[byName[0]], nil
	default:
		return nil, fmt.Errorf("%d profiles are called %q, sign in with the id instead", len(byName), selector)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
