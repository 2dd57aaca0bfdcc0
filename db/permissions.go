package db

import (
	"sync"

	"cmscore/models"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type permissionKey struct {
	userId int64
	siteId int64
}

// PermissionRepository records which users manage which sites
type PermissionRepository struct {
	mu          sync.RWMutex
	permissions map[permissionKey]models.Permission
	order       []permissionKey
}

func NewPermissionRepository() *PermissionRepository {
	return &PermissionRepository{permissions: make(map[permissionKey]models.Permission)}
}

// Grant gives user management rights over site. Granting twice overwrites.
func (r *PermissionRepository) Grant(user models.User, site models.Site) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := permissionKey{userId: user.Id, siteId: site.Id}
	if _, ok := r.permissions[key]; !ok {
		r.order = append(r.order, key)
	}
	r.permissions[key] = models.Permission{User: user, Site: site}

	log.WithFields(log.Fields{
		"user": user.Username,
		"site": site.Name,
	}).Debug("Granted site permission")
}

func (r *PermissionRepository) Revoke(user models.User, site models.Site) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := permissionKey{userId: user.Id, siteId: site.Id}
	if _, ok := r.permissions[key]; !ok {
		return false
	}
	delete(r.permissions, key)
	r.order = lo.Without(r.order, key)
	return true
}

func (r *PermissionRepository) HasPermission(user models.User, site models.Site) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.permissions[permissionKey{userId: user.Id, siteId: site.Id}]
	return ok
}

// UsersWithoutPermission returns the users in allUsers not granted on site,
// keeping their order.
func (r *PermissionRepository) UsersWithoutPermission(site models.Site, allUsers []models.User) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Reject(allUsers, func(user models.User, _ int) bool {
		_, ok := r.permissions[permissionKey{userId: user.Id, siteId: site.Id}]
		return ok
	})
}

// ListBySite returns the grants on a site in grant order
func (r *PermissionRepository) ListBySite(siteId int64) []models.Permission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := lo.Filter(r.order, func(key permissionKey, _ int) bool { return key.siteId == siteId })
	return lo.Map(keys, func(key permissionKey, _ int) models.Permission { return r.permissions[key] })
}

func (r *PermissionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.permissions)
}
