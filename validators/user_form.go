package validators

import (
	"errors"
	"mime/multipart"
)

var ErrUsernameEmpty = errors.New("aucun nom d'utilisateur fourni")

// CreateUserForm is the typed shape of the signup multipart form. String
// fields and the optional file part are pulled out of the raw form before
// anything touches the store.
type CreateUserForm struct {
	Username string
	Email    string
	Password string
	Image    *multipart.FileHeader
}

// UpdateUserForm is the typed shape of the profile update form. Username and
// email are required on every call, there is no partial-field patch. Images
// replace the whole existing set when present.
type UpdateUserForm struct {
	Username string
	Email    string
	Images   []*multipart.FileHeader
}

func formValue(f *multipart.Form, key string) string {
	if v, ok := f.Value[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

// ParseCreateUserForm extracts and validates the signup form
func ParseCreateUserForm(f *multipart.Form) (*CreateUserForm, error) {
	out := &CreateUserForm{
		Username: formValue(f, "username"),
		Email:    formValue(f, "email"),
		Password: formValue(f, "password"),
	}

	if files, ok := f.File["imageFile"]; ok && len(files) > 0 {
		out.Image = files[0]
	}

	if out.Username == "" {
		return nil, ErrUsernameEmpty
	}

	if err := EmailValidator(out.Email); err != nil {
		return nil, err
	}

	if err := PasswordValidator(out.Password); err != nil {
		return nil, err
	}

	return out, nil
}

// ParseUpdateUserForm extracts and validates the profile update form
func ParseUpdateUserForm(f *multipart.Form) (*UpdateUserForm, error) {
	out := &UpdateUserForm{
		Username: formValue(f, "username"),
		Email:    formValue(f, "email"),
		Images:   f.File["image"],
	}

	if out.Username == "" {
		return nil, ErrUsernameEmpty
	}

	if err := EmailValidator(out.Email); err != nil {
		return nil, err
	}

	return out, nil
}
