package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"shukketsu/pkg/api"
)

func newQRCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Location QR codes and scan-based check-in",
	}

	cmd.AddCommand(newQRLocationsCmd(a))
	cmd.AddCommand(newQRCreateLocationCmd(a))
	cmd.AddCommand(newQRDeleteLocationCmd(a))
	cmd.AddCommand(newQRImageCmd(a))
	cmd.AddCommand(newQRScanCmd(a))

	return cmd
}

func newQRLocationsCmd(a *app) *cobra.Command {
	var orgID int64

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List registered scan locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Security().ListLocations(cmd.Context(), orgID)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().Int64Var(&orgID, "org", 0, "Filter by organization ID")

	return cmd
}

func newQRCreateLocationCmd(a *app) *cobra.Command {
	var (
		in    api.LocationQRInput
		image string
	)

	cmd := &cobra.Command{
		Use:   "create-location",
		Short: "Register a scan location and generate its QR code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var upload *api.Upload
			if image != "" {
				f, err := os.Open(image)
				if err != nil {
					return fmt.Errorf("open image: %w", err)
				}
				defer f.Close()
				upload = &api.Upload{
					Field:    "image",
					Filename: filepath.Base(image),
					Reader:   f,
				}
			}
			res, err := a.client.Security().CreateLocationQR(cmd.Context(), in, upload)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Location name (required)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Location description")
	cmd.Flags().Int64Var(&in.OrganizationID, "org", 0, "Organization ID")
	cmd.Flags().StringVar(&image, "image", "", "Custom poster image to upload")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newQRDeleteLocationCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-location <id>",
		Short: "Remove a scan location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Security().DeleteLocation(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func newQRImageCmd(a *app) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "image <location-id>",
		Short: "Download the QR image for a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			data, err := a.client.Security().QRImage(cmd.Context(), id)
			if err != nil {
				return err
			}
			if outFile == "" || outFile == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outFile, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(data), outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Output file (default stdout)")

	return cmd
}

func newQRScanCmd(a *app) *cobra.Command {
	var (
		code   string
		userID int64
		at     string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Submit a scanned QR code as an attendance event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := api.ScanInput{Code: code, UserID: userID, ScannedAt: time.Now()}
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
				in.ScannedAt = t
			}
			res, err := a.client.Security().ScanQR(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Scanned QR payload (required)")
	cmd.Flags().Int64Var(&userID, "user", 0, "User ID the scan is for")
	cmd.Flags().StringVar(&at, "at", "", "Scan time, RFC 3339 (defaults to now)")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}
