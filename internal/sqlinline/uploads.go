package sqlinline

const QCreateStagedUploads = `--sql 5b1a2f0d-8e4c-4b6a-9f3e-2d7c1a9e0b41
create table if not exists staged_uploads (
  id           uuid primary key,
  name         text not null,
  content_type text not null,
  bytes        bigint not null,
  data         bytea not null,
  created_at   timestamptz not null default now()
);
`

const QInsertStagedUpload = `--sql c8e3d6f2-41a7-4d0b-b5e9-7f2a6c3d9e18
insert into staged_uploads(id, name, content_type, bytes, data, created_at)
values ($1::uuid, $2::text, $3::text, $4::bigint, $5::bytea, now())
returning id;
`
