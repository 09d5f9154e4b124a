package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "interco-cli",
		Short: "Intercompany booking CLI tool",
		Long:  `A command line interface for interacting with the intercompany booking API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the booking API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(allocateCmd())
	rootCmd.AddCommand(bookCmd())
	rootCmd.AddCommand(scenarioCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service readiness",
		Run: func(cmd *cobra.Command, args []string) {
			body, status := doRequest(http.MethodGet, "/ready", nil, "")
			if status != http.StatusOK {
				fmt.Printf("Service NOT ready (Status: %d)\nResponse: %s\n", status, body)
				os.Exit(1)
			}
			fmt.Printf("Service ready\n%s\n", body)
		},
	}
}

func openCmd() *cobra.Command {
	var scenarioID string

	cmd := &cobra.Command{
		Use:   "open <bank-line-id>",
		Short: "Validate a bank line before booking",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/bank-lines/" + args[0] + "/open"
			if scenarioID != "" {
				path += "?scenario_id=" + scenarioID
			}
			printResponse(doRequest(http.MethodGet, path, nil, ""))
		},
	}

	cmd.Flags().StringVar(&scenarioID, "scenario", "", "Previously selected scenario ID")

	return cmd
}

func allocateCmd() *cobra.Command {
	var shares []string
	var refText string
	var idempotencyKey string

	cmd := &cobra.Command{
		Use:   "allocate <bank-line-id>",
		Short: "Split a bank line across companies",
		Long:  `Splits one bank statement line across companies. Shares are given as company-id:percent pairs, e.g. --share co-beta:60 --share co-gamma:40.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			type shareReq struct {
				CompanyID string `json:"company_id"`
				Percent   string `json:"percent"`
			}

			req := struct {
				Shares  []shareReq `json:"shares"`
				RefText string     `json:"ref_text,omitempty"`
			}{RefText: refText}

			for _, s := range shares {
				parts := strings.SplitN(s, ":", 2)
				if len(parts) != 2 {
					fmt.Printf("Invalid share %q: expected company-id:percent\n", s)
					os.Exit(1)
				}
				req.Shares = append(req.Shares, shareReq{CompanyID: parts[0], Percent: parts[1]})
			}

			body, _ := json.Marshal(req)
			printResponse(doRequest(http.MethodPost, "/api/v1/bank-lines/"+args[0]+"/allocate", body, idempotencyKey))
		},
	}

	cmd.Flags().StringArrayVar(&shares, "share", nil, "Allocation share as company-id:percent (repeatable)")
	cmd.Flags().StringVar(&refText, "ref", "", "Free reference text carried into entry narratives")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key for safe retries")
	cmd.MarkFlagRequired("share")

	return cmd
}

func bookCmd() *cobra.Command {
	var scenarioID string
	var template string
	var reference string
	var idempotencyKey string

	cmd := &cobra.Command{
		Use:   "book <bank-line-id>",
		Short: "Book a bank line through a scenario or template",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := struct {
				ScenarioID string `json:"scenario_id,omitempty"`
				Template   string `json:"template,omitempty"`
				Reference  string `json:"reference,omitempty"`
			}{ScenarioID: scenarioID, Template: template, Reference: reference}

			body, _ := json.Marshal(req)
			printResponse(doRequest(http.MethodPost, "/api/v1/bank-lines/"+args[0]+"/book", body, idempotencyKey))
		},
	}

	cmd.Flags().StringVar(&scenarioID, "scenario", "", "Scenario ID to book through")
	cmd.Flags().StringVar(&template, "template", "", "Quick booking template name")
	cmd.Flags().StringVar(&reference, "ref", "", "Free reference text carried into entry narratives")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key for safe retries")

	return cmd
}

func scenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Scenario operations",
	}

	var sourceCompany string
	var activeOnly bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/scenarios/?source_company_id=" + sourceCompany
			if activeOnly {
				path += "&active=true"
			}
			printResponse(doRequest(http.MethodGet, path, nil, ""))
		},
	}
	listCmd.Flags().StringVar(&sourceCompany, "company", "", "Filter by source company ID")
	listCmd.Flags().BoolVar(&activeOnly, "active", false, "Only active scenarios")

	activateCmd := &cobra.Command{
		Use:   "activate <scenario-id>",
		Short: "Activate a scenario",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			printResponse(doRequest(http.MethodPost, "/api/v1/scenarios/"+args[0]+"/activate", nil, ""))
		},
	}

	deactivateCmd := &cobra.Command{
		Use:   "deactivate <scenario-id>",
		Short: "Deactivate a scenario",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			printResponse(doRequest(http.MethodPost, "/api/v1/scenarios/"+args[0]+"/deactivate", nil, ""))
		},
	}

	var importFile string

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Create scenarios from a YAML file",
		Run: func(cmd *cobra.Command, args []string) {
			type scenarioDef struct {
				Name                  string `yaml:"name" json:"name"`
				Active                bool   `yaml:"active" json:"active"`
				SourceCompanyID       string `yaml:"source_company_id" json:"source_company_id"`
				DestCompanyID         string `yaml:"dest_company_id" json:"dest_company_id"`
				SourceJournalID       string `yaml:"source_journal_id" json:"source_journal_id"`
				DestJournalID         string `yaml:"dest_journal_id" json:"dest_journal_id"`
				SourceDebitAccountID  string `yaml:"source_debit_account_id" json:"source_debit_account_id"`
				SourceCreditAccountID string `yaml:"source_credit_account_id" json:"source_credit_account_id"`
				DestDebitAccountID    string `yaml:"dest_debit_account_id" json:"dest_debit_account_id"`
				DestCreditAccountID   string `yaml:"dest_credit_account_id" json:"dest_credit_account_id"`
			}

			data, err := os.ReadFile(importFile)
			if err != nil {
				fmt.Printf("Error reading %s: %v\n", importFile, err)
				os.Exit(1)
			}

			var defs struct {
				Scenarios []scenarioDef `yaml:"scenarios"`
			}
			if err := yaml.Unmarshal(data, &defs); err != nil {
				fmt.Printf("Error parsing %s: %v\n", importFile, err)
				os.Exit(1)
			}
			if len(defs.Scenarios) == 0 {
				fmt.Printf("No scenarios found in %s\n", importFile)
				os.Exit(1)
			}

			for _, def := range defs.Scenarios {
				body, _ := json.Marshal(def)
				fmt.Printf("Importing %q\n", def.Name)
				printResponse(doRequest(http.MethodPost, "/api/v1/scenarios/", body, ""))
			}
		},
	}
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "YAML file with scenario definitions")
	importCmd.MarkFlagRequired("file")

	cmd.AddCommand(listCmd, activateCmd, deactivateCmd, importCmd)

	return cmd
}

func doRequest(method, path string, body []byte, idempotencyKey string) (string, int) {
	client := &http.Client{Timeout: timeout}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return string(respBody), resp.StatusCode
}

func printResponse(body string, status int) {
	if status < 200 || status >= 300 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", status, body)
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(body), "", "  "); err != nil {
		fmt.Println(body)
		return
	}
	fmt.Println(pretty.String())
}
