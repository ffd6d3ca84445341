package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hashicorp/go-multierror"
)

// AccountResolver turns [accounts.*] sections into named accounts
type AccountResolver struct {
	accounts map[string]config.AccountConfig
}

// NewAccountResolver creates a resolver over the project accounts
func NewAccountResolver(cfg *config.RuntimeConfig) *AccountResolver {
	var accounts map[string]config.AccountConfig
	if cfg.Project != nil {
		accounts = cfg.Project.Accounts
	}
	return &AccountResolver{accounts: accounts}
}

// NamedAccounts resolves every account, then applies the network's alias
// overrides. Invalid accounts are reported together.
func (r *AccountResolver) NamedAccounts(ctx context.Context, network *config.Network) (map[string]*models.Account, error) {
	var errs *multierror.Error
	resolved := make(map[string]*models.Account, len(r.accounts))

	for _, name := range sortedKeys(r.accounts) {
		account, err := resolveAccount(name, r.accounts[name])
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		resolved[name] = account
	}

	named := make(map[string]*models.Account, len(resolved))
	for name, account := range resolved {
		named[name] = account
	}
	if network != nil {
		for _, alias := range sortedKeys(network.Accounts) {
			target := network.Accounts[alias]
			account, ok := resolved[target]
			if !ok {
				if _, configured := r.accounts[target]; !configured {
					errs = multierror.Append(errs, fmt.Errorf("network %s maps %s to unknown account %q", network.Name, alias, target))
				}
				continue
			}
			aliased := *account
			aliased.Name = alias
			named[alias] = &aliased
		}
	}

	if deployer, ok := named["deployer"]; ok && !deployer.CanSign() {
		errs = multierror.Append(errs, fmt.Errorf("account deployer is read-only: it needs type = \"private_key\""))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("invalid accounts: %w", err)
	}
	return named, nil
}

func resolveAccount(name string, ac config.AccountConfig) (*models.Account, error) {
	switch ac.Type {
	case config.SenderTypePrivateKey:
		raw := os.ExpandEnv(ac.PrivateKey)
		if raw == "" {
			return nil, fmt.Errorf("accounts.%s: private_key is empty%s", name, envHint(ac.PrivateKey))
		}
		key, err := crypto.HexToECDSA(strings.TrimPrefix(raw, "0x"))
		if err != nil {
			return nil, fmt.Errorf("accounts.%s: invalid private key: %w", name, err)
		}
		account := &models.Account{Name: name, Address: crypto.PubkeyToAddress(key.PublicKey), Key: key}
		if ac.Address != "" {
			expected := os.ExpandEnv(ac.Address)
			if !common.IsHexAddress(expected) || common.HexToAddress(expected) != account.Address {
				return nil, fmt.Errorf("accounts.%s: private key belongs to %s, not %s", name, account.Address.Hex(), expected)
			}
		}
		return account, nil

	case config.SenderTypeAddress:
		raw := os.ExpandEnv(ac.Address)
		if raw == "" {
			return nil, fmt.Errorf("accounts.%s: address is empty%s", name, envHint(ac.Address))
		}
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("accounts.%s: invalid address %q", name, raw)
		}
		return &models.Account{Name: name, Address: common.HexToAddress(raw)}, nil

	default:
		return nil, fmt.Errorf("accounts.%s: unknown type %q", name, ac.Type)
	}
}
