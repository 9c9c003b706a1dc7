package services

// Services defined in this package:
// - AuthService: authentication, token refresh and account registration
// - IdentityService: professor folder-name resolution
// - PermissionService: role and ownership based access decisions
// - FolderService: folder provisioning and custom folder management
// - ScanService: directory scanning, listings and ETags
// - ExplorerService: nested tree views over the scan service
// - FileService: document upload, download, replace and delete
// - AcademicService: years, semesters, courses and course assignments
