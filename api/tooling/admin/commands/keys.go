package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/auth"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/role"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/keystore"
	"github.com/spf13/cobra"
)

// GenKeyOptions holds flags for the genkey command.
type GenKeyOptions struct {
	*RootOptions
	Dir string
	KID string
}

// NewGenKeyCommand creates the command that writes a new signing key.
func NewGenKeyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenKeyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "genkey",
		Short: "Generate an RSA private key for signing tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kid := opts.KID
			if kid == "" {
				kid = uuid.NewString()
			}

			path, err := genKey(opts.Dir, kid)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "kid: %s\nfile: %s\n", kid, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "zarf/keys", "folder the key is written to")
	cmd.Flags().StringVar(&opts.KID, "kid", "", "key id, a random uuid when empty")

	return cmd
}

func genKey(dir string, kid string) (string, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return "", fmt.Errorf("generating key: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating folder: %w", err)
	}

	path := filepath.Join(dir, kid+".pem")

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("creating key file: %w", err)
	}
	defer file.Close()

	block := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	if err := pem.Encode(file, &block); err != nil {
		return "", fmt.Errorf("encoding private key: %w", err)
	}

	return path, nil
}

// GenTokenOptions holds flags for the gentoken command.
type GenTokenOptions struct {
	*RootOptions
	Dir      string
	KID      string
	Issuer   string
	UserID   string
	TenantID string
	Role     string
}

// NewGenTokenCommand creates the command that signs a token for an
// employee. The token is only honored when the user maps to an employee of
// the same tenant.
func NewGenTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenTokenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gentoken",
		Short: "Generate a bearer token for an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := genToken(opts)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires: %s\n", time.Now().Add(auth.TokenTTL).Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "zarf/keys", "folder holding the signing keys")
	cmd.Flags().StringVar(&opts.KID, "kid", "", "key id to sign with")
	cmd.Flags().StringVar(&opts.Issuer, "issuer", "wertvoll-dispo", "token issuer")
	cmd.Flags().StringVar(&opts.UserID, "user", "", "user id")
	cmd.Flags().StringVar(&opts.TenantID, "tenant", "", "tenant id")
	cmd.Flags().StringVar(&opts.Role, "role", role.Staff.String(), "employee role")

	for _, name := range []string{"kid", "user", "tenant"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func genToken(opts *GenTokenOptions) (string, error) {
	userID, err := uuid.Parse(opts.UserID)
	if err != nil {
		return "", fmt.Errorf("parsing user: %w", err)
	}

	tenantID, err := uuid.Parse(opts.TenantID)
	if err != nil {
		return "", fmt.Errorf("parsing tenant: %w", err)
	}

	rl, err := role.Parse(opts.Role)
	if err != nil {
		return "", fmt.Errorf("parsing role: %w", err)
	}

	ks := keystore.New()
	if _, err := ks.LoadByFileSystem(os.DirFS(opts.Dir)); err != nil {
		return "", fmt.Errorf("loading keys: %w", err)
	}

	ath, err := auth.New(auth.Config{
		Log:       opts.Log,
		KeyLookup: ks,
		Issuer:    opts.Issuer,
	})
	if err != nil {
		return "", fmt.Errorf("constructing auth: %w", err)
	}

	actor := employeebus.Actor{
		UserID:   userID,
		TenantID: tenantID,
		Role:     rl,
	}

	token, err := ath.GenerateToken(opts.KID, actor)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}

	return token, nil
}
