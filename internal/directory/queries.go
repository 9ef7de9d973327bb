package directory

// All directory SQL is consolidated here. Statements are parameterized with
// @name placeholders and run with search_path pinned to public.

const stmtClientDBName = `
SELECT db_name
FROM public.client
WHERE id = @client_id
  AND is_active = true`

const stmtListClients = `
SELECT id, code, name, is_active, db_name, created_at, updated_at
FROM public.client
ORDER BY name`

const stmtClientStats = `
SELECT
    COUNT(*)                              AS total_clients,
    COUNT(*) FILTER (WHERE is_active)     AS active_clients,
    COUNT(*) FILTER (WHERE NOT is_active) AS inactive_clients
FROM public.client`

const stmtSearchClients = `
SELECT id, name, is_active
FROM public.client
WHERE LOWER(name) LIKE LOWER(@criteria || '%')
  AND is_active = true
ORDER BY name`

const stmtInsertClient = `
INSERT INTO public.client (code, db_name, email, is_active, name, phone)
VALUES (
    @code,
    NULLIF(@db_name, ''),
    NULLIF(@email, ''),
    true,
    @name,
    NULLIF(@phone, '')
)
RETURNING id, code, name, is_active, db_name, created_at, updated_at`

const stmtDeactivateClient = `
UPDATE public.client
SET is_active = false,
    updated_at = NOW()
WHERE id = @client_id
  AND is_active = true`
