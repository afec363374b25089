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
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lendpool-cli",
		Short: "LendPool CLI tool",
		Long:  `A command line interface for interacting with the LendPool API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the LendPool API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(poolCmd(), loanCmd(), liquidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func poolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Pool operations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show pool totals and utilization",
			RunE: func(cmd *cobra.Command, args []string) error {
				return getJSON("/api/v1/pool/")
			},
		},
		&cobra.Command{
			Use:   "deposit <account> <amount>",
			Short: "Deposit assets into the pool",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return postJSON("/api/v1/pool/deposits", map[string]string{
					"account": args[0],
					"amount":  args[1],
				})
			},
		},
		&cobra.Command{
			Use:   "withdraw <account> [shares]",
			Short: "Burn shares for assets, everything when shares omitted",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				payload := map[string]string{"account": args[0]}
				if len(args) == 2 {
					payload["shares"] = args[1]
				}
				return postJSON("/api/v1/pool/withdrawals", payload)
			},
		},
		&cobra.Command{
			Use:   "quote-shares <amount>",
			Short: "Quote shares minted for a deposit amount",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return getJSON("/api/v1/pool/quote/shares?amount=" + args[0])
			},
		},
		&cobra.Command{
			Use:   "quote-amount <shares>",
			Short: "Quote the asset value of a share count",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return getJSON("/api/v1/pool/quote/amount?shares=" + args[0])
			},
		},
	)

	return cmd
}

func loanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Borrowing operations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "borrow <account> <amount>",
			Short: "Borrow against share collateral",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return postJSON("/api/v1/loans/borrow", map[string]string{
					"account": args[0],
					"amount":  args[1],
				})
			},
		},
		&cobra.Command{
			Use:   "repay <account> <amount>",
			Short: "Pay down debt, 0 settles interest only",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return postJSON("/api/v1/loans/repay", map[string]string{
					"account": args[0],
					"amount":  args[1],
				})
			},
		},
		&cobra.Command{
			Use:   "repay-all <account>",
			Short: "Clear the account's full debt",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return postJSON("/api/v1/loans/repay-all", map[string]string{
					"account": args[0],
				})
			},
		},
		&cobra.Command{
			Use:   "position <account>",
			Short: "Show debt, collateral and projected health",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return getJSON("/api/v1/loans/" + args[0])
			},
		},
		&cobra.Command{
			Use:   "accrue <account>",
			Short: "Settle the account's interest up to now",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return postJSON("/api/v1/loans/"+args[0]+"/accrue", nil)
			},
		},
		&cobra.Command{
			Use:   "health <account>",
			Short: "Settle interest pool-wide and report the account's standing",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return postJSON("/api/v1/loans/"+args[0]+"/health", nil)
			},
		},
	)

	return cmd
}

func liquidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "liquidate <liquidator> <borrower> <amount>",
		Short: "Repay an unhealthy borrower's debt and seize shares",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/v1/liquidations", map[string]string{
				"liquidator": args[0],
				"borrower":   args[1],
				"amount":     args[2],
			})
		},
	}
}

func getJSON(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return renderResponse(resp)
}

func postJSON(path string, payload any) error {
	body := []byte("{}")
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return renderResponse(resp)
}

func renderResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("failed to parse response: %s", string(body))
	}

	printJSON(decoded)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(out))
}
