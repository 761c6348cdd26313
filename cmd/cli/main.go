package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "peerpay-cli",
		Short: "PeerPay CLI tool",
		Long:  `A command line interface for interacting with the PeerPay API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the PeerPay API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated endpoints")

	registerCmd := &cobra.Command{
		Use:   "register <username> <email> <password>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/users/register", map[string]string{
				"username": args[0],
				"email":    args[1],
				"password": args[2],
			})
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and print a token",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/users/login", map[string]string{
				"username": args[0],
				"password": args[1],
			})
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts/"+args[0], nil)
		},
	}

	sendCmd := &cobra.Command{
		Use:   "send <sender-account-id> <receiver-account-id> <amount>",
		Short: "Transfer money between accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/transfers", map[string]string{
				"sender_account_id":   args[0],
				"receiver_account_id": args[1],
				"amount":              args[2],
			})
		},
	}

	var fromYear int
	historyCmd := &cobra.Command{
		Use:   "history <account-id>",
		Short: "Show payment history for an account, newest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/payments?account_id=" + args[0]
			if fromYear > 0 {
				path = fmt.Sprintf("%s&from_year=%d", path, fromYear)
			}
			doJSON(http.MethodGet, path, nil)
		},
	}
	historyCmd.Flags().IntVar(&fromYear, "from-year", 0, "Only show payments from this year onward")

	rootCmd.AddCommand(registerCmd, loginCmd, balanceCmd, sendCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// doJSON sends a request and pretty-prints the JSON response.
func doJSON(method, path string, payload any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		fmt.Println(string(data))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= http.StatusBadRequest {
		os.Exit(1)
	}
}
