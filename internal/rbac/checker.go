// Package rbac gates dashboard routes by the role stored on the login.
package rbac

import (
	"context"

	"gorm.io/gorm"

	"seguimiento_proyectos/internal/models"
)

type Checker struct{ DB *gorm.DB }

// Can reports whether the active login holds one of the roles.
func (c Checker) Can(ctx context.Context, loginID int64, roles ...string) (bool, error) {
	var count int64
	err := c.DB.WithContext(ctx).
		Model(&models.Login{}).
		Where("id_login = ? AND activo = ? AND rol IN ?", loginID, true, roles).
		Count(&count).Error
	return count > 0, err
}
