package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/desknote/internal/credential"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the stored GitHub token",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a GitHub token in the system keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print("GitHub token: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}

		token := strings.TrimSpace(line)
		if token == "" {
			return fmt.Errorf("token must not be empty")
		}

		if err := credential.Set(credential.GitHubTokenKey, token); err != nil {
			return err
		}
		fmt.Println("token stored")
		return nil
	},
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored GitHub token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := credential.Delete(credential.GitHubTokenKey); err != nil {
			return err
		}
		fmt.Println("token removed")
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenDeleteCmd)
}
