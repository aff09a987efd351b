package db

// SchemaSQL contains the database schema initialization SQL.
const SchemaSQL = `
    -- ==========================================================================
    -- PROFILE TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS profile SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON profile TYPE string;
    DEFINE FIELD IF NOT EXISTS role ON profile TYPE string DEFAULT "user"
        ASSERT $value IN ["admin", "user", "guest"];
    -- Aggregates maintained on every history append so leaderboards can sort
    -- without scanning debates.
    DEFINE FIELD IF NOT EXISTS total_debates ON profile TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS wins ON profile TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS win_rate ON profile TYPE float DEFAULT 0.0;
    DEFINE FIELD IF NOT EXISTS best_overall ON profile TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS created ON profile TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS updated ON profile TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS profile_name ON profile FIELDS name UNIQUE;
    DEFINE INDEX IF NOT EXISTS profile_best ON profile FIELDS best_overall;
    DEFINE INDEX IF NOT EXISTS profile_win_rate ON profile FIELDS win_rate;

    -- ==========================================================================
    -- DEBATE TABLE (append-only history)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS debate SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS profile ON debate TYPE string;
    DEFINE FIELD IF NOT EXISTS topic ON debate TYPE string;
    DEFINE FIELD IF NOT EXISTS category ON debate TYPE string;
    DEFINE FIELD IF NOT EXISTS mode ON debate TYPE string;
    DEFINE FIELD IF NOT EXISTS response_length ON debate TYPE string;
    DEFINE FIELD IF NOT EXISTS user_side ON debate TYPE string
        ASSERT $value IN ["Support", "Oppose"];
    DEFINE FIELD IF NOT EXISTS ai_side ON debate TYPE string
        ASSERT $value IN ["Support", "Oppose"];
    DEFINE FIELD IF NOT EXISTS turns ON debate TYPE array<object> FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS score ON debate TYPE object FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS rating ON debate TYPE string;
    DEFINE FIELD IF NOT EXISTS tips ON debate TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS status ON debate TYPE string DEFAULT "completed";
    DEFINE FIELD IF NOT EXISTS duration ON debate TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS created ON debate TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS debate_profile ON debate FIELDS profile;
    DEFINE INDEX IF NOT EXISTS debate_created ON debate FIELDS created;
    DEFINE INDEX IF NOT EXISTS debate_category ON debate FIELDS category;
`
