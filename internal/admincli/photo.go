package admincli

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/infixtech/ixtportal/internal/netx"
)

// MaxPhotoSize caps profile photo uploads.
const MaxPhotoSize = 5 << 20

// httpClient is a test seam for the object storage upload.
var httpClient = http.DefaultClient

func newUploadPhotoCmd(opts *options) *cobra.Command {
	var accountID, path string

	cmd := &cobra.Command{
		Use:   "upload-photo",
		Short: "Upload a profile photo for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if len(data) > MaxPhotoSize {
				return fmt.Errorf("photo is %d bytes, limit is %d", len(data), MaxPhotoSize)
			}
			contentType := http.DetectContentType(data)
			if !strings.HasPrefix(contentType, "image/") {
				return fmt.Errorf("not an image: %s", contentType)
			}

			return opts.withBackend(cmd.Context(), func(b Backend) error {
				key, url, err := b.ProfilePhotoUploadURL(cmd.Context(), accountID)
				if err != nil {
					return err
				}
				if err := netx.UploadPresigned(cmd.Context(), httpClient, url, contentType, data); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), key)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&accountID, "account-id", "", "account ID")
	cmd.Flags().StringVar(&path, "file", "", "image file")
	_ = cmd.MarkFlagRequired("account-id")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
