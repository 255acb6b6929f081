package usersrepo

import (
	"context"
	"fmt"

	"github.com/jrazmi/backoffice/core/repositories/userstatusesrepo"
	"github.com/jrazmi/backoffice/sdk/validation"
)

const rolesTable = "user_roles"

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

func (r *Repository) validateCreate(ctx context.Context, input CreateUser) error {
	fe := validation.Collect(input)
	checkPasswordBytes(&fe, input.Password)

	if err := r.checkReferences(ctx, &fe, input.UserStatusID, input.UserRoleID); err != nil {
		return err
	}
	if err := r.checkEmail(ctx, &fe, input.Email, 0); err != nil {
		return err
	}

	return fe.Err()
}

func (r *Repository) validateUpdate(ctx context.Context, id int, input UpdateUser) error {
	fe := validation.Collect(input)
	checkPasswordBytes(&fe, input.Password)

	found, err := r.storer.Exists(ctx, Table, "id", id)
	if err != nil {
		return fmt.Errorf("check user %d: %w", id, err)
	}
	if !found {
		fe.Add("id", "exists", "The selected id is invalid")
	}

	if err := r.checkReferences(ctx, &fe, input.UserStatusID, input.UserRoleID); err != nil {
		return err
	}
	if err := r.checkEmail(ctx, &fe, input.Email, id); err != nil {
		return err
	}

	return fe.Err()
}

// checkPasswordBytes rejects passwords within the character limit whose
// encoding is too long to hash.
func checkPasswordBytes(fe *validation.FieldErrors, password string) {
	if fe.Has("password") || len(password) <= maxPasswordBytes {
		return
	}
	fe.Add("password", "max_bytes", fmt.Sprintf("Password must not exceed %d bytes", maxPasswordBytes))
}

// checkReferences verifies the status and role ids point at existing rows.
// Fields that already failed a struct rule are not looked up.
func (r *Repository) checkReferences(ctx context.Context, fe *validation.FieldErrors, statusID, roleID int) error {
	refs := []struct {
		field string
		table string
		value int
	}{
		{"user_status_id", userstatusesrepo.Table, statusID},
		{"user_role_id", rolesTable, roleID},
	}

	for _, ref := range refs {
		if fe.Has(ref.field) {
			continue
		}
		found, err := r.storer.Exists(ctx, ref.table, "id", ref.value)
		if err != nil {
			return fmt.Errorf("check %s: %w", ref.field, err)
		}
		if !found {
			fe.Add(ref.field, "exists", fmt.Sprintf("The selected %s is invalid", ref.field))
		}
	}
	return nil
}

// checkEmail verifies no other user owns email. A zero exceptID checks
// every user.
func (r *Repository) checkEmail(ctx context.Context, fe *validation.FieldErrors, email string, exceptID int) error {
	if fe.Has("email") {
		return nil
	}

	var (
		unique bool
		err    error
	)
	if exceptID == 0 {
		unique, err = r.storer.IsUnique(ctx, Table, "email", email, "", nil)
	} else {
		unique, err = r.storer.IsUnique(ctx, Table, "email", email, "id", exceptID)
	}
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if !unique {
		fe.Add("email", "unique", "The email has already been taken")
	}
	return nil
}
