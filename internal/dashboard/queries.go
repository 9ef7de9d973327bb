package dashboard

// securitySchema is the fixed schema the per-tenant stats query reads from.
const securitySchema = "security"

// stmtBuUserStats counts business units and users (admin and overall,
// active and inactive) inside one tenant database.
const stmtBuUserStats = `
SELECT
    (SELECT COUNT(*)                              FROM security.bu)                    AS total_bu,
    (SELECT COUNT(*) FILTER (WHERE is_active)     FROM security.bu)                    AS active_bu,
    (SELECT COUNT(*) FILTER (WHERE NOT is_active) FROM security.bu)                    AS inactive_bu,
    (SELECT COUNT(*)                              FROM security."user" WHERE is_admin) AS total_admin_users,
    (SELECT COUNT(*) FILTER (WHERE is_active     AND is_admin) FROM security."user")   AS active_admin_users,
    (SELECT COUNT(*) FILTER (WHERE NOT is_active AND is_admin) FROM security."user")   AS inactive_admin_users,
    (SELECT COUNT(*)                              FROM security."user")                AS total_users,
    (SELECT COUNT(*) FILTER (WHERE is_active)     FROM security."user")                AS active_users,
    (SELECT COUNT(*) FILTER (WHERE NOT is_active) FROM security."user")                AS inactive_users`
