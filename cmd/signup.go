package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/utils"
	"github.com/misterclayt0n/fittrack/internal/validation"
	"github.com/spf13/cobra"
)

var (
	signupName  string
	signupEmail string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a profile and use it for every following command",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := validation.ProfileInput{
			Username: strings.TrimSpace(signupName),
			Email:    strings.TrimSpace(signupEmail),
		}
		if err := validation.Profile(in); err != nil {
			return fmt.Errorf("Invalid profile: %w", err)
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		p := models.Profile{
			ID:        uuid.New().String(),
			Username:  in.Username,
			Email:     in.Email,
			CreatedAt: time.Now().UTC(),
		}
		if err := st.CreateProfile(cmd.Context(), p); err != nil {
			return fmt.Errorf("Failed to create profile: %w", err)
		}
		if err := utils.SaveActiveProfile(&p); err != nil {
			return fmt.Errorf("Failed to save active profile: %w", err)
		}

		fmt.Printf("✅ Welcome, %s!\n", color.New(color.FgGreen, color.Bold).Sprint(p.Username))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile()
		if err != nil {
			return err
		}

		printMetric("Username", p.Username)
		printMetric("Email", p.Email)
		printMetric("ID", p.ID)
		printMetric("Member since", utils.FormatDay(p.CreatedAt))
		return nil
	},
}

func init() {
	signupCmd.Flags().StringVarP(&signupName, "name", "n", "", "Display name")
	signupCmd.Flags().StringVarP(&signupEmail, "email", "e", "", "Email address")
	signupCmd.MarkFlagRequired("name")
	signupCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(whoamiCmd)
}
