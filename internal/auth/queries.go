package auth

// SecuritySchema is the fixed schema holding user and role tables inside
// every tenant database.
const SecuritySchema = "security"

// stmtUserByIdentity matches a user by username or email with a
// case-sensitive exact match. When both fields match different rows the
// username match wins; the ORDER BY makes that rule deterministic.
const stmtUserByIdentity = `
SELECT u.id, u.username, u.email, u.mobile, u.password_hash, u.full_name,
       u.is_active, u.is_admin,
       (SELECT r.name
        FROM user_bu_role ubr
        JOIN role r ON r.id = ubr.role_id
        WHERE ubr.user_id = u.id AND ubr.is_active = true
        ORDER BY r.name LIMIT 1) AS role_name,
       array_to_string(ARRAY(
           SELECT DISTINCT ar.code
           FROM user_bu_role ubr
           JOIN role_access_right rar ON rar.role_id = ubr.role_id
           JOIN access_right ar ON ar.id = rar.access_right_id
           WHERE ubr.user_id = u.id AND ubr.is_active = true
           ORDER BY ar.code
       ), ',') AS access_rights
FROM "user" u
WHERE u.username = @identity
   OR u.email = @identity
ORDER BY (u.username = @identity) DESC
LIMIT 1`
