package db

const Schema = `
CREATE TABLE IF NOT EXISTS users
(
    user_id       SERIAL PRIMARY KEY,
    username      VARCHAR(50)  NOT NULL UNIQUE,
    email         VARCHAR(100) NOT NULL UNIQUE,
    date_of_birth DATE         NOT NULL,
    created_at    TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS exercises
(
    exercise_id  SERIAL PRIMARY KEY,
    name         VARCHAR(100) NOT NULL,
    muscle_group VARCHAR(50)  NOT NULL,
    description  TEXT,
    is_compound  BOOLEAN      NOT NULL DEFAULT FALSE,
    UNIQUE (name, muscle_group)
);
CREATE INDEX IF NOT EXISTS ix_exercises_muscle_group ON exercises (muscle_group);

CREATE TABLE IF NOT EXISTS workouts
(
    workout_id   SERIAL PRIMARY KEY,
    user_id      INTEGER      NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
    workout_name VARCHAR(100) NOT NULL,
    workout_date TIMESTAMP WITHOUT TIME ZONE NOT NULL,
    duration     INTEGER,
    notes        TEXT,
    created_at   TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ix_workouts_user_date ON workouts (user_id, workout_date);

CREATE TABLE IF NOT EXISTS workout_exercises
(
    workout_exercise_id SERIAL PRIMARY KEY,
    workout_id          INTEGER NOT NULL REFERENCES workouts (workout_id) ON DELETE CASCADE,
    exercise_id         INTEGER NOT NULL REFERENCES exercises (exercise_id),
    position            INTEGER NOT NULL,
    sets                INTEGER NOT NULL CHECK (sets > 0),
    reps                INTEGER NOT NULL CHECK (reps > 0),
    weight              DOUBLE PRECISION CHECK (weight IS NULL OR weight >= 0)
);
CREATE INDEX IF NOT EXISTS ix_workout_exercises_workout ON workout_exercises (workout_id);

CREATE TABLE IF NOT EXISTS user_rankings
(
    ranking_id   SERIAL PRIMARY KEY,
    user_id      INTEGER     NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
    muscle_group VARCHAR(50) NOT NULL,
    mmr_score    INTEGER     NOT NULL,
    rank_tier    VARCHAR(20) NOT NULL,
    updated_at   TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now(),
    UNIQUE (user_id, muscle_group)
);
CREATE INDEX IF NOT EXISTS ix_user_rankings_group_score ON user_rankings (muscle_group, mmr_score DESC);

CREATE TABLE IF NOT EXISTS friends
(
    friendship_id SERIAL PRIMARY KEY,
    user_id       INTEGER     NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
    friend_id     INTEGER     NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
    status        VARCHAR(20) NOT NULL,
    created_at    TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now(),
    updated_at    TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now(),
    CHECK (user_id <> friend_id)
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_friends_pair ON friends (LEAST(user_id, friend_id), GREATEST(user_id, friend_id));

CREATE TABLE IF NOT EXISTS shared_workouts
(
    shared_workout_id SERIAL PRIMARY KEY,
    creator_id        INTEGER      NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
    workout_name      VARCHAR(100) NOT NULL,
    workout_date      TIMESTAMP WITHOUT TIME ZONE NOT NULL,
    is_active         BOOLEAN      NOT NULL DEFAULT TRUE,
    created_at        TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ix_shared_workouts_creator ON shared_workouts (creator_id) WHERE is_active;

CREATE TABLE IF NOT EXISTS shared_workout_participants
(
    participant_id    SERIAL PRIMARY KEY,
    shared_workout_id INTEGER NOT NULL REFERENCES shared_workouts (shared_workout_id) ON DELETE CASCADE,
    user_id           INTEGER NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
    joined_at         TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now(),
    UNIQUE (shared_workout_id, user_id)
);
`

const SeedExercises = `
INSERT INTO exercises (name, muscle_group, description, is_compound) VALUES
    ('Bench Press', 'Chest', 'Lie on a flat bench and press weight upward.', TRUE),
    ('Incline Bench Press', 'Chest', 'Lie on an inclined bench and press weight upward.', TRUE),
    ('Decline Bench Press', 'Chest', 'Lie on a declined bench and press weight upward.', TRUE),
    ('Dumbbell Fly', 'Chest', 'Lie on a bench and move dumbbells in an arc.', FALSE),
    ('Push-Up', 'Chest', 'Push body up from the ground.', TRUE),
    ('Pull-Up', 'Back', 'Pull body up to a bar.', TRUE),
    ('Lat Pulldown', 'Back', 'Pull a bar down to chest level.', TRUE),
    ('Bent Over Row', 'Back', 'Bend over and pull weight to chest.', TRUE),
    ('Deadlift', 'Back', 'Lift weight from ground to hip level.', TRUE),
    ('T-Bar Row', 'Back', 'Row weight upward using a T-bar.', TRUE),
    ('Squat', 'Legs', 'Bend knees and lower body, then stand up.', TRUE),
    ('Leg Press', 'Legs', 'Push weight away using legs.', TRUE),
    ('Leg Extension', 'Legs', 'Extend legs to lift weight.', FALSE),
    ('Leg Curl', 'Legs', 'Curl legs to lift weight.', FALSE),
    ('Calf Raise', 'Legs', 'Raise heels to lift weight.', FALSE),
    ('Overhead Press', 'Shoulders', 'Press weight overhead.', TRUE),
    ('Lateral Raise', 'Shoulders', 'Raise arms to sides.', FALSE),
    ('Front Raise', 'Shoulders', 'Raise arms to front.', FALSE),
    ('Reverse Fly', 'Shoulders', 'Raise arms to back.', FALSE),
    ('Shrug', 'Shoulders', 'Lift shoulders upward.', FALSE),
    ('Bicep Curl', 'Arms', 'Curl weight toward shoulder.', FALSE),
    ('Tricep Extension', 'Arms', 'Extend arms to straighten.', FALSE),
    ('Hammer Curl', 'Arms', 'Curl weight with neutral grip.', FALSE),
    ('Skull Crusher', 'Arms', 'Lower weight to forehead, then extend arms.', FALSE),
    ('Chin-Up', 'Arms', 'Pull body up to a bar with underhand grip.', TRUE)
ON CONFLICT (name, muscle_group) DO NOTHING;
`
