package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iotx/contactrelay/pkg/sealedconfig"
)

const defaultSealedPath = "config.sealed"

var (
	sealOutput string
	openInput  string
	openReveal bool
)

var sealConfigCmd = &cobra.Command{
	Use:   "seal-config",
	Short: "Encrypt the EMAIL_* settings into a file safe to commit",
	Long: `Read EMAIL_HOST, EMAIL_PORT, EMAIL_USER, EMAIL_PASS and EMAIL_TLS_MODE,
encrypt them with ENCRYPTION_KEY and write the result to --out.

Point EMAIL_SEALED_CONFIG at the file to have serve use it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.EncryptionKey == "" {
			return fmt.Errorf("%w in .env file", errEncryptionKeyMissing)
		}

		if err := sealedconfig.WriteFile(sealOutput, cfg.EncryptionKey, sealedconfig.FromSMTP(cfg.Mail.SMTP)); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Email configuration encrypted and saved to %s\n", sealOutput)
		fmt.Fprintln(out, "You can safely commit this file to version control.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "IMPORTANT: Keep your ENCRYPTION_KEY secure and do not commit it to version control!")
		return nil
	},
}

var openConfigCmd = &cobra.Command{
	Use:   "open-config",
	Short: "Decrypt a sealed email configuration and print it as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.EncryptionKey == "" {
			return fmt.Errorf("%w in .env file", errEncryptionKeyMissing)
		}

		path := openInput
		if path == "" {
			path = cfg.SealedMailPath
		}
		if path == "" {
			path = defaultSealedPath
		}

		m, err := sealedconfig.ReadFile(path, cfg.EncryptionKey)
		if err != nil {
			return err
		}
		if !openReveal {
			m.Auth.Pass = maskSecret(m.Auth.Pass)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	},
}

func init() {
	sealConfigCmd.Flags().StringVarP(&sealOutput, "out", "o", defaultSealedPath, "file to write")
	openConfigCmd.Flags().StringVarP(&openInput, "in", "i", "", "sealed file (default EMAIL_SEALED_CONFIG or "+defaultSealedPath+")")
	openConfigCmd.Flags().BoolVar(&openReveal, "reveal", false, "print the password in clear text")
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
