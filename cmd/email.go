/*
Copyright 2025 The streamlens Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/streamlens/streamlens/internal/report"
)

var emailDryRun bool

var emailCmd = &cobra.Command{
	Use:   "email <address> [from] [to (optional)]",
	Short: "Emails the markdown listening report",
	Long: `Generates the report and sends it via SendGrid. Requires the
sendgrid_api_key and from config values.`,
	Args: cobra.RangeArgs(1, 3),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("sendgrid_api_key") == "" {
			return fmt.Errorf("required config \"sendgrid_api_key\" not set")
		}
		if viper.GetString("from") == "" {
			return fmt.Errorf("required config \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runEmail(args[0], args[1:]); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	emailCmd.Flags().BoolVar(&emailDryRun, "dry-run", false, "print the report instead of sending it")

	var from string
	emailCmd.Flags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", emailCmd.Flags().Lookup("from"))

	var apiKey string
	emailCmd.Flags().StringVar(&apiKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", emailCmd.Flags().Lookup("sendgrid_api_key"))
}

func runEmail(toAddress string, dateArgs []string) error {
	data, err := buildReportData(dateArgs)
	if err != nil {
		return err
	}
	body, err := report.Markdown(data)
	if err != nil {
		return err
	}

	if emailDryRun {
		fmt.Println(body)
		return nil
	}

	from := mail.NewEmail("streamlens", viper.GetString("from"))
	to := mail.NewEmail(toAddress, toAddress)
	subject := "Your listening report"
	message := mail.NewSingleEmail(from, subject, to, body, "<pre>"+body+"</pre>")
	client := sendgrid.NewSendClient(viper.GetString("sendgrid_api_key"))
	if _, err := client.Send(message); err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}

	fmt.Printf("Sent report to %s\n", toAddress)
	return nil
}
